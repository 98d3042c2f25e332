package store

import (
	"fmt"

	"github.com/codeshem/sokonimbs/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Store wraps the payments database. It is constructed once at startup and
// passed to the handlers; there are no package-level handles.
type Store struct {
	db *gorm.DB
}

func Connect(cfg Config) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to payments database: %w", err)
	}

	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate transactions table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) CreateTransaction(txn *models.Transaction) error {
	return s.db.Create(txn).Error
}

// UpdateTransaction applies the given column updates to the transaction
// identified by its account reference.
func (s *Store) UpdateTransaction(accountRef string, updates map[string]interface{}) error {
	return s.db.Model(&models.Transaction{}).
		Where("account_ref = ?", accountRef).
		Updates(updates).Error
}
