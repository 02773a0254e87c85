package filter

import (
	"sort"
	"strings"
)

var catalogs = map[GroupKind][]Tag{
	Demographic: {
		{ID: "1", Name: "Shounen"},
		{ID: "2", Name: "Shoujo"},
		{ID: "3", Name: "Seinen"},
		{ID: "4", Name: "Josei"},
	},
	PublicationStatus: {
		{ID: "1", Name: "Ongoing"},
		{ID: "2", Name: "Completed"},
		{ID: "3", Name: "Cancelled"},
		{ID: "4", Name: "Hiatus"},
	},
	Content: {
		{ID: "9", Name: "Ecchi"},
		{ID: "32", Name: "Smut"},
		{ID: "49", Name: "Gore"},
		{ID: "50", Name: "Sexual Violence"},
	},
	Format: {
		{ID: "1", Name: "4-koma"},
		{ID: "4", Name: "Award Winning"},
		{ID: "7", Name: "Doujinshi"},
		{ID: "21", Name: "Oneshot"},
		{ID: "36", Name: "Long Strip"},
		{ID: "42", Name: "Adaptation"},
		{ID: "43", Name: "Anthology"},
		{ID: "44", Name: "Web Comic"},
		{ID: "45", Name: "Full Color"},
		{ID: "46", Name: "User Created"},
		{ID: "47", Name: "Official Colored"},
		{ID: "48", Name: "Fan Colored"},
	},
	Genre: {
		{ID: "2", Name: "Action"},
		{ID: "3", Name: "Adventure"},
		{ID: "5", Name: "Comedy"},
		{ID: "8", Name: "Drama"},
		{ID: "10", Name: "Fantasy"},
		{ID: "13", Name: "Historical"},
		{ID: "14", Name: "Horror"},
		{ID: "17", Name: "Mecha"},
		{ID: "18", Name: "Medical"},
		{ID: "20", Name: "Mystery"},
		{ID: "22", Name: "Psychological"},
		{ID: "23", Name: "Romance"},
		{ID: "25", Name: "Sci-Fi"},
		{ID: "28", Name: "Shoujo Ai"},
		{ID: "30", Name: "Shounen Ai"},
		{ID: "31", Name: "Slice of Life"},
		{ID: "33", Name: "Sports"},
		{ID: "35", Name: "Tragedy"},
		{ID: "37", Name: "Yaoi"},
		{ID: "38", Name: "Yuri"},
		{ID: "41", Name: "Isekai"},
		{ID: "51", Name: "Crime"},
		{ID: "52", Name: "Magical Girls"},
		{ID: "53", Name: "Philosophical"},
		{ID: "54", Name: "Superhero"},
		{ID: "55", Name: "Thriller"},
		{ID: "56", Name: "Wuxia"},
	},
	Theme: {
		{ID: "6", Name: "Cooking"},
		{ID: "11", Name: "Gyaru"},
		{ID: "12", Name: "Harem"},
		{ID: "16", Name: "Martial Arts"},
		{ID: "19", Name: "Music"},
		{ID: "24", Name: "School Life"},
		{ID: "34", Name: "Supernatural"},
		{ID: "40", Name: "Video Games"},
		{ID: "57", Name: "Aliens"},
		{ID: "58", Name: "Animals"},
		{ID: "59", Name: "Crossdressing"},
		{ID: "60", Name: "Demons"},
		{ID: "61", Name: "Delinquents"},
		{ID: "62", Name: "Genderswap"},
		{ID: "63", Name: "Ghosts"},
		{ID: "64", Name: "Monster Girls"},
		{ID: "65", Name: "Loli"},
		{ID: "66", Name: "Magic"},
		{ID: "67", Name: "Military"},
		{ID: "68", Name: "Monsters"},
		{ID: "69", Name: "Ninja"},
		{ID: "70", Name: "Office Workers"},
		{ID: "71", Name: "Police"},
		{ID: "72", Name: "Post-Apocalyptic"},
		{ID: "73", Name: "Reincarnation"},
		{ID: "74", Name: "Reverse Harem"},
		{ID: "75", Name: "Samurai"},
		{ID: "76", Name: "Shota"},
		{ID: "77", Name: "Survival"},
		{ID: "78", Name: "Time Travel"},
		{ID: "79", Name: "Vampires"},
		{ID: "80", Name: "Traditional Games"},
		{ID: "81", Name: "Virtual Reality"},
		{ID: "82", Name: "Zombies"},
		{ID: "83", Name: "Incest"},
	},
}

// genres decodes the genre ids returned by the manga API.
var genres = func() map[string]string {
	m := make(map[string]string)
	for _, kind := range []GroupKind{Content, Format, Genre, Theme} {
		for _, t := range catalogs[kind] {
			m[t.ID] = t.Name
		}
	}
	return m
}()

// Tags returns a fresh, name sorted copy of a catalog with every tag neutral.
func Tags(kind GroupKind) []Tag {
	tags := make([]Tag, len(catalogs[kind]))
	copy(tags, catalogs[kind])
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
	return tags
}

// GenreName looks up a content, format, genre or theme id.
func GenreName(id string) (string, bool) {
	name, ok := genres[id]
	return name, ok
}
