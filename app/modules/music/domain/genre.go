package musicdomain

import "fmt"

// Genre is the closed set of genre tags a band can carry.
type Genre string

const (
	GenreRock       Genre = "ROCK"
	GenrePop        Genre = "POP"
	GenreJazz       Genre = "JAZZ"
	GenreBlues      Genre = "BLUES"
	GenreFolk       Genre = "FOLK"
	GenreElectronic Genre = "ELECTRONIC"
	GenreHipHop     Genre = "HIP_HOP"
)

// Genres returns every valid genre in declaration order.
func Genres() []Genre {
	return []Genre{GenreRock, GenrePop, GenreJazz, GenreBlues, GenreFolk, GenreElectronic, GenreHipHop}
}

// IsValid checks if the genre is a valid value.
func (g Genre) IsValid() bool {
	switch g {
	case GenreRock, GenrePop, GenreJazz, GenreBlues, GenreFolk, GenreElectronic, GenreHipHop:
		return true
	default:
		return false
	}
}

// String returns the string representation of the genre.
func (g Genre) String() string {
	return string(g)
}

// ParseGenre converts an exact tag such as "HIP_HOP" into a Genre.
func ParseGenre(s string) (Genre, error) {
	g := Genre(s)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid genre %q", s)
	}
	return g, nil
}
