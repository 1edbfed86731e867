// Package loader reads trajectory batches from the whitespace separated text
// format: a trajectory count, then per trajectory a sample count followed by
// that many "x y t" triples.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jengzang/trajectory-classifier/internal/models"
)

// ErrMalformed is returned for non-integer tokens or truncated input
var ErrMalformed = errors.New("malformed trajectory input")

// maxPrealloc bounds slice capacity taken from declared counts; larger inputs grow by append
const maxPrealloc = 1024

// ReadFile parses the trajectory file at path
func ReadFile(path string) (models.ParsedSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ParsedSet{}, fmt.Errorf("failed to open trajectory file: %w", err)
	}
	defer f.Close()

	set, err := Read(f)
	if err != nil {
		return models.ParsedSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Read parses a trajectory batch from r. Trajectories are numbered in input
// order. A negative count stops parsing and is reported through the declared
// counts of the returned set rather than as an error, leaving the decision to
// the classification engine.
func Read(r io.Reader) (models.ParsedSet, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("failed to read %s: %w", what, err)
			}
			return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformed, what, sc.Text())
		}
		return v, nil
	}

	count, err := next("trajectory count")
	if err != nil {
		return models.ParsedSet{}, err
	}
	set := models.ParsedSet{DeclaredCount: count}
	if count < 0 {
		return set, nil
	}
	set.Trajectories = make([]models.ParsedTrajectory, 0, min(count, maxPrealloc))

	for id := 0; id < count; id++ {
		n, err := next(fmt.Sprintf("sample count of trajectory %d", id))
		if err != nil {
			return models.ParsedSet{}, err
		}
		pt := models.ParsedTrajectory{ID: id, DeclaredSamples: n}
		if n < 0 {
			set.Trajectories = append(set.Trajectories, pt)
			return set, nil
		}

		pt.Samples = make([]models.Sample, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			var s models.Sample
			if s.X, err = next("x"); err != nil {
				return models.ParsedSet{}, err
			}
			if s.Y, err = next("y"); err != nil {
				return models.ParsedSet{}, err
			}
			if s.T, err = next("t"); err != nil {
				return models.ParsedSet{}, err
			}
			pt.Samples = append(pt.Samples, s)
		}
		set.Trajectories = append(set.Trajectories, pt)
	}

	return set, nil
}
