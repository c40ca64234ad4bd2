package entities

import "time"

// Book is the only persisted record. ISBN is unique across all rows and ID is
// assigned by the store and never reused.
type Book struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `gorm:"not null" json:"author"`
	ISBN      string    `gorm:"column:isbn;uniqueIndex:idx_books_isbn;not null" json:"isbn"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName pins the table name independently of gorm's naming strategy.
func (Book) TableName() string {
	return "books"
}
