package entities

// TitleCount is a title and how many times it was delivered.
type TitleCount struct {
	Title string
	Count int
}

// UserStats aggregates a user's delivery log.
type UserStats struct {
	Total    int         // all delivered articles
	LastWeek int         // delivered during the last 7 days, today included
	Favorite *TitleCount // most frequent title, nil when history is empty
}

// Overview is a bot-wide snapshot used by the status endpoint.
type Overview struct {
	Users          int `json:"users"`
	ActiveUsers    int `json:"active_users"`
	DeliveredToday int `json:"delivered_today"`
}
