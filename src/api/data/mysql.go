package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func MustMySQL(dsn string) *gorm.DB {
	// TranslateError so duplicate-key surfaces as gorm.ErrDuplicatedKey
	// (the moderation store relies on it for slug collisions).
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}
