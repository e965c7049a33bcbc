package models

type Item struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Price   float64 `json:"price" yaml:"price"`
	Deleted bool    `json:"deleted" yaml:"deleted"`
}
