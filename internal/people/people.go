// Package people holds the ordered collection of person records loaded from
// the input and answers key searches against its inverted index.
package people

import (
	"fmt"
	"io"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/parser"
)

// NoMatchesMessage is printed in place of an empty collection.
const NoMatchesMessage = "No matching people found."

// Person is one input line and its words.
type Person struct {
	data  string
	words []string
}

func NewPerson(data string) Person {
	return Person{
		data:  data,
		words: tokenizer.Split(data),
	}
}

// Data returns the line exactly as it was read.
func (p Person) Data() string {
	return p.data
}

// People is an ordered, read-only collection of persons. A person's position
// in the collection is its identity in the inverted index.
type People struct {
	people []Person

	once     sync.Once
	inverted *index.Inverted
}

// New builds a collection from lines and indexes it.
func New(lines []string) *People {
	persons := make([]Person, len(lines))
	for i, line := range lines {
		persons[i] = NewPerson(line)
	}
	p := &People{people: persons}
	p.Index()
	return p
}

// fromPersons wraps an existing slice without indexing it; the index is
// built on first search.
func fromPersons(persons []Person) *People {
	return &People{people: persons}
}

// Index returns the collection's inverted index, building it on first use.
func (p *People) Index() *index.Inverted {
	p.once.Do(func() {
		docs := make([][]string, len(p.people))
		for i, person := range p.people {
			docs[i] = person.words
		}
		p.inverted = index.Build(docs)
	})
	return p.inverted
}

func (p *People) Len() int {
	return len(p.people)
}

// Lines returns the original text of every record in order.
func (p *People) Lines() []string {
	lines := make([]string, len(p.people))
	for i, person := range p.people {
		lines[i] = person.data
	}
	return lines
}

// Match returns the ascending positions of the records matching key under
// the named strategy.
func (p *People) Match(key string, strategy string) []int {
	return executor.New(p.Index()).Execute(parser.Parse(key, strategy))
}

// SearchByKey returns the matching records as a new collection in their
// original order. An unrecognised strategy yields an empty collection.
func (p *People) SearchByKey(key string, strategy string) *People {
	return p.Subset(p.Match(key, strategy))
}

// Subset returns a new collection of the persons at positions. Out of range
// positions are an error in the caller and are skipped.
func (p *People) Subset(positions []int) *People {
	persons := make([]Person, 0, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= len(p.people) {
			continue
		}
		persons = append(persons, p.people[pos])
	}
	return fromPersons(persons)
}

// PrintAll writes each record on its own line, or NoMatchesMessage when the
// collection is empty.
func (p *People) PrintAll(w io.Writer) error {
	if len(p.people) == 0 {
		_, err := fmt.Fprintln(w, NoMatchesMessage)
		return err
	}
	for _, person := range p.people {
		if _, err := fmt.Fprintln(w, person.data); err != nil {
			return err
		}
	}
	return nil
}
