package request

// MovieRequest is used for both create and update; an update replaces every
// descriptive field and never touches popularity.
type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	ReleaseDate string `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration    int    `json:"duration" validate:"required,min=1,max=999"`
	Genre       string `json:"genre" validate:"required,min=1,max=100"`
}
