package sumfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Algo names the hash used for new entries.
const Algo = "b2"

type hashedEntity struct {
	hash   []byte
	entity string
	algo   string
}

// Sumfile records integrity hashes for files, one `algo:hash name`
// line per entry, sorted by name.
type Sumfile struct {
	entities []hashedEntity
}

func (s *Sumfile) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadBytes('\n')

		colon := bytes.IndexByte(line, ':')
		space := bytes.IndexByte(line, ' ')

		if colon != -1 && space != -1 && colon < space {
			algo := string(line[:colon])
			entity := string(bytes.TrimSpace(line[space+1:]))

			b, derr := base58.Decode(string(line[colon+1 : space]))
			if derr != nil {
				return derr
			}

			s.entities = append(s.entities, hashedEntity{
				algo:   algo,
				hash:   b,
				entity: entity,
			})
		}

		if err != nil {
			if err == io.EOF {
				return nil
			}

			return err
		}
	}
}

// Add records a hash for an entity, replacing any existing entry.
func (s *Sumfile) Add(entity, algo string, h []byte) string {
	idx := sort.Search(len(s.entities), func(i int) bool {
		return s.entities[i].entity >= entity
	})

	he := hashedEntity{
		algo:   algo,
		hash:   h,
		entity: entity,
	}

	if idx < len(s.entities) && s.entities[idx].entity == entity {
		s.entities[idx] = he
	} else {
		s.entities = append(s.entities, hashedEntity{})
		copy(s.entities[idx+1:], s.entities[idx:])
		s.entities[idx] = he
	}

	return algo + ":" + base58.Encode(h)
}

func (s *Sumfile) Save(w io.Writer) error {
	for _, he := range s.entities {
		_, err := fmt.Fprintf(w, "%s:%s %s\n", he.algo, base58.Encode(he.hash), he.entity)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Sumfile) Lookup(entity string) (string, []byte, bool) {
	idx := sort.Search(len(s.entities), func(i int) bool {
		return s.entities[i].entity >= entity
	})

	if idx == len(s.entities) || s.entities[idx].entity != entity {
		return "", nil, false
	}

	return s.entities[idx].algo, s.entities[idx].hash, true
}

func (s *Sumfile) Entities() []string {
	var out []string

	for _, he := range s.entities {
		out = append(out, he.entity)
	}

	return out
}

// HashFile computes the blake2b-256 sum of a file.
func HashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	_, err = io.Copy(h, f)
	if err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
