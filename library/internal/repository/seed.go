package repository

import (
	_ "embed"
	"os"

	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed/books.yaml
var defaultSeed []byte

// Seed is the catalog a ledger starts from and returns to on Reset.
type Seed struct {
	Books []model.Book `yaml:"books"`
	Loans []model.Loan `yaml:"loans"`
}

func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed document from path, or the embedded catalog when path is empty.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, errors.Wrap(err, "read seed")
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, errors.Wrap(err, "decode seed")
	}
	if err := s.normalize(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// normalize fills ids and derives book status from the open loans.
func (s *Seed) normalize() error {
	index := make(map[string]int, len(s.Books))
	for i := range s.Books {
		b := &s.Books[i]
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if _, dup := index[b.ID]; dup {
			return errors.Errorf("seed: duplicate book id %s", b.ID)
		}
		index[b.ID] = i
		b.Tags = model.NormalizeTags(b.Tags)
		if b.Status != model.BookReserved {
			b.Status = model.BookAvailable
		}
	}

	loans := s.Loans[:0]
	for _, l := range s.Loans {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if l.Status == "" {
			l.Status = model.LoanActive
		}
		if !l.Status.Open() {
			continue
		}
		i, ok := index[l.BookID]
		if !ok {
			return errors.Errorf("seed: loan %s references unknown book %s", l.ID, l.BookID)
		}
		if s.Books[i].Status == model.BookLoaned {
			return errors.Errorf("seed: book %s has more than one open loan", l.BookID)
		}
		s.Books[i].Status = model.BookLoaned
		loans = append(loans, l)
	}
	s.Loans = loans
	return nil
}
