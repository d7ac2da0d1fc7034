package types

// Wire shapes for the pull/push delta protocol. Child rows are flattened out
// of the crop document for transport: their numeric id is positional within
// the current series snapshot, so clients must key cached rows by
// (id_cultura, data), not by id.

type CropRow struct {
	ID             int     `json:"id"`
	CropID         string  `json:"id_cultura"`
	Latitude       string  `json:"latitude"`
	Longitude      string  `json:"longitude"`
	Name           string  `json:"nome_cultivo"`
	TemperatureMax float64 `json:"temperatura_max"`
	RainfallMax    float64 `json:"pluviometria_max"`
	TemperatureMin float64 `json:"temperatura_min"`
	RainfallMin    float64 `json:"pluviometria_min"`
	LastUpdate     string  `json:"last_update"`
	CreatedAt      string  `json:"created_at"`
	DeletedAt      string  `json:"deleted_at"`
	UserID         string  `json:"user_id"`
}

type TemperatureRow struct {
	ID     int     `json:"id"`
	CropID string  `json:"id_cultura"`
	Date   string  `json:"data"`
	Avg    float64 `json:"temperatura_media"`
	Max    float64 `json:"temperatura_max"`
	Min    float64 `json:"temperatura_min"`
}

type RainfallRow struct {
	ID     int     `json:"id"`
	CropID string  `json:"id_cultura"`
	Date   string  `json:"data"`
	Mm     float64 `json:"pluviometria"`
}

// Collection is the created/updated/deleted triple kept per logical table.
type Collection[T any] struct {
	Created []T      `json:"created"`
	Updated []T      `json:"updated"`
	Deleted []string `json:"deleted"`
}

// Changes carries one collection per logical table. Table keys follow the
// client database schema.
type Changes struct {
	Crops             Collection[CropRow]        `json:"Cultura"`
	Temperatures      Collection[TemperatureRow] `json:"Temperatura"`
	Rainfall          Collection[RainfallRow]    `json:"Pluviometria"`
	TemperatureAlerts Collection[TemperatureRow] `json:"AlertasTemperatura"`
	RainfallAlerts    Collection[RainfallRow]    `json:"AlertasPluviometria"`
}

// PullResponse stamps the delta with the watermark the client must present on
// its next pull.
type PullResponse struct {
	Changes   Changes `json:"changes"`
	Timestamp int64   `json:"timestamp"`
}

// PushFailure annotates one rejected item; the rest of the batch still
// applies.
type PushFailure struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Reason     string `json:"reason"`
}

type PushResponse struct {
	Applied  int           `json:"applied"`
	Failures []PushFailure `json:"failures,omitempty"`
}
