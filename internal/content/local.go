// local.go — built-in seed catalog. Used when TMDB is not configured or
// unreachable, so listing pages and tests never render empty.
package content

// Featured is the hero item shown when no better candidate exists.
var Featured = Item{
	ID:          "hero-1",
	Title:       "Cyberpunk: Edgerunners",
	Description: "In a dystopia riddled with corruption and cybernetic implants, a talented but reckless street kid strives to become a mercenary outlaw — an edgerunner.",
	Genre:       []string{"Anime", "Sci-Fi", "Action"},
	Rating:      4.8,
	Year:        2022,
	AgeRating:   "16",
	Type:        TypeAnime,
	Seasons:     1,
	VideoURL:    "https://www.youtube.com/embed/JtqIas3bYhg",
}

// LocalMovies is the fallback movie catalog.
var LocalMovies = []Item{
	{ID: "m-1", Title: "Midnight Circuit", Description: "A getaway driver takes one last job across a flooded city.", Genre: []string{"Action", "Thriller"}, Rating: 4.2, Year: 2023, AgeRating: "14", Type: TypeMovie, Duration: "1h 58m"},
	{ID: "m-2", Title: "The Paper Garden", Description: "An origami artist discovers her folds predict the future.", Genre: []string{"Drama", "Fantasy"}, Rating: 4.5, Year: 2021, AgeRating: "10", Type: TypeMovie, Duration: "2h 04m"},
	{ID: "m-3", Title: "Redline Protocol", Description: "A disgraced engineer races to stop the machine she built.", Genre: []string{"Sci-Fi", "Action"}, Rating: 3.9, Year: 2024, AgeRating: "16", Type: TypeMovie, Duration: "2h 11m"},
	{ID: "m-4", Title: "Saltwater Letters", Description: "Two lighthouse keepers trade letters across a decade.", Genre: []string{"Romance", "Drama"}, Rating: 4.0, Year: 2019, AgeRating: "12", Type: TypeMovie, Duration: "1h 47m"},
	{ID: "m-5", Title: "Hollow Crown", Description: "A heist crew targets the vault beneath a collapsing monarchy.", Genre: []string{"Crime", "Thriller"}, Rating: 4.1, Year: 2022, AgeRating: "18", Type: TypeMovie, Duration: "2h 20m"},
}

// LocalSeries is the fallback series catalog.
var LocalSeries = []Item{
	{ID: "s-1", Title: "Northwind", Description: "Detectives in an arctic town where the sun never rises.", Genre: []string{"Crime", "Mystery"}, Rating: 4.6, Year: 2023, AgeRating: "16", Type: TypeSeries, Seasons: 2},
	{ID: "s-2", Title: "The Long Orbit", Description: "A generation ship's crew discovers they are not alone aboard.", Genre: []string{"Sci-Fi", "Drama"}, Rating: 4.3, Year: 2022, AgeRating: "14", Type: TypeSeries, Seasons: 3},
	{ID: "s-3", Title: "Glasshouse", Description: "A family of botanists guards the last seed bank on earth.", Genre: []string{"Drama"}, Rating: 3.8, Year: 2020, AgeRating: "12", Type: TypeSeries, Seasons: 4},
	{ID: "s-4", Title: "Cold Open", Description: "A late-night sketch show unravels behind the scenes.", Genre: []string{"Comedy"}, Rating: 4.0, Year: 2024, AgeRating: "14", Type: TypeSeries, Seasons: 1},
}

// LocalAnimes is the fallback anime catalog.
var LocalAnimes = []Item{
	{ID: "a-1", Title: "Ashfall Academy", Description: "Students at a school for volcano spirits face graduation.", Genre: []string{"Fantasy", "Action"}, Rating: 4.4, Year: 2023, AgeRating: "12", Type: TypeAnime, Seasons: 2},
	{ID: "a-2", Title: "Neon Koi", Description: "A street racer bonds with a digital fish that eats code.", Genre: []string{"Sci-Fi", "Action"}, Rating: 4.7, Year: 2024, AgeRating: "14", Type: TypeAnime, Seasons: 1},
	{ID: "a-3", Title: "Teahouse at the End of the World", Description: "A quiet slice-of-life about the last teahouse after the apocalypse.", Genre: []string{"Slice of Life", "Drama"}, Rating: 4.5, Year: 2021, AgeRating: "10", Type: TypeAnime, Seasons: 3},
	{ID: "a-4", Title: "Bloodline Zero", Description: "A vampire surgeon hunts the clan that made her.", Genre: []string{"Horror", "Action"}, Rating: 4.1, Year: 2022, AgeRating: "18", Type: TypeAnime, Seasons: 2},
}

// LocalAll returns the combined fallback catalog including the featured item.
func LocalAll() []Item {
	all := make([]Item, 0, len(LocalMovies)+len(LocalSeries)+len(LocalAnimes)+1)
	all = append(all, LocalMovies...)
	all = append(all, LocalSeries...)
	all = append(all, LocalAnimes...)
	all = append(all, Featured)
	return all
}
