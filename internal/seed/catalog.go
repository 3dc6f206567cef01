package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"alxtravel/internal/pkg/validator"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type UserEntry struct {
	Username  string `yaml:"username" validate:"required,max=150"`
	Email     string `yaml:"email" validate:"required,email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

// LocalPart is the mailbox name before '@'.
func (u UserEntry) LocalPart() string {
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

type ListingEntry struct {
	Title         string  `yaml:"title" validate:"required,max=200"`
	Description   string  `yaml:"description"`
	Location      string  `yaml:"location" validate:"required"`
	PricePerNight float64 `yaml:"price_per_night" validate:"gt=0"`
}

// Catalog is the sample data the seeder cycles through.
type Catalog struct {
	Users    []UserEntry    `yaml:"users" validate:"required,min=1,dive"`
	Listings []ListingEntry `yaml:"listings" validate:"required,min=1,dive"`
	Comments []string       `yaml:"comments" validate:"required,min=1,dive,required"`
}

// DefaultCatalog returns the embedded sample catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file; an empty path yields the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validator.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}
