package schema

// CoreGenreTable represents the 'core.genre' table
type CoreGenreTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = CoreGenreTable{
	Table:     "core.genre",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

// CoreComicGenreTable represents the 'core.comicgenre' join table
type CoreComicGenreTable struct {
	Table   string
	ComicID string
	GenreID string
}

// CoreComicGenre is the schema definition for core.comicgenre
var CoreComicGenre = CoreComicGenreTable{
	Table:   "core.comicgenre",
	ComicID: "comicid",
	GenreID: "genreid",
}
