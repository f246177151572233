package handler

// errorResponse is the standard error envelope returned on most 4xx/5xx
// responses. Validation failures use FieldErrors instead.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// bookRequest is the payload for create and update. All fields are required
// even on update: partial update semantics apply at the store, not partial
// validation. Price is a pointer so an explicit 0 passes "required".
type bookRequest struct {
	Title         string   `json:"title"          validate:"required,max=255"`
	Author        string   `json:"author"         validate:"required,max=255"`
	PublishedDate string   `json:"published_date" validate:"required,datetime=2006-01-02"`
	Genre         string   `json:"genre"          validate:"required,max=100"`
	Price         *float64 `json:"price"          validate:"required,gte=0"`
}

type bookResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedDate string  `json:"published_date"`
	Genre         string  `json:"genre"`
	Price         float64 `json:"price"`
}

// bookFields is a book without its identifier, used for the updated_data
// payload echoed back on update.
type bookFields struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedDate string  `json:"published_date"`
	Genre         string  `json:"genre"`
	Price         float64 `json:"price"`
}

type updateBookResponse struct {
	Message     string     `json:"message"`
	UpdatedData bookFields `json:"updated_data"`
}

// listBooksResponse is the paginated envelope: next/previous are absolute
// URLs, null at the respective edge of the collection.
type listBooksResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []bookResponse `json:"results"`
}

type averagePriceResponse struct {
	AveragePrice float64 `json:"average_price"`
}
