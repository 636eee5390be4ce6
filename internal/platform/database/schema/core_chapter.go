package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table      string
	ID         string
	ComicID    string
	UploaderID string
	Number     string
	Title      string
	SourceName string
	PageCount  string
	ViewCount  string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:      "core.chapter",
	ID:         "id",
	ComicID:    "comicid",
	UploaderID: "uploaderid",
	Number:     "chapternumber",
	Title:      "title",
	SourceName: "sourcename",
	PageCount:  "pagecount",
	ViewCount:  "viewcount",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.ComicID, t.UploaderID, t.Number, t.Title, t.SourceName,
		t.PageCount, t.ViewCount, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
