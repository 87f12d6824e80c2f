package neighbors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adam-broussard/SoundNebula/catalog"
)

// Bounds is a resolved range of timesteps.
type Bounds struct {
	// Latest is the lowest-redshift timestep of the range, where walks
	// start.
	Latest catalog.Timestep
	// EarliestIndex and LatestIndex are positions in the simulation's
	// timestep list.
	EarliestIndex, LatestIndex int
	// Steps is the number of timesteps in the range, counting both ends.
	Steps int
}

// ResolveBounds finds the timesteps identified by the latest and earliest
// tokens within steps, which must be ordered from earliest to latest. A
// token identifies a timestep if it equals the timestep's label or if it is
// an integer equal to the number at the end of the label, so "640" matches
// "h148.000640". Tokens that match no label or several labels are errors.
func ResolveBounds(
	steps []catalog.Timestep, latest, earliest string,
) (*Bounds, error) {
	late, err := findTimestep(steps, latest)
	if err != nil {
		return nil, err
	}
	early, err := findTimestep(steps, earliest)
	if err != nil {
		return nil, err
	}

	if late < early {
		return nil, fmt.Errorf("%w: %s comes before %s",
			ErrBoundsOrder, steps[late].Label(), steps[early].Label())
	}

	return &Bounds{
		Latest:        steps[late],
		EarliestIndex: early,
		LatestIndex:   late,
		Steps:         late - early + 1,
	}, nil
}

func findTimestep(steps []catalog.Timestep, token string) (int, error) {
	matches := []int{}
	for i := range steps {
		if matchToken(token, steps[i].Label()) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return -1, fmt.Errorf("%w token %q", ErrTimestepNotFound, token)
	case 1:
		return matches[0], nil
	}

	labels := make([]string, len(matches))
	for i, j := range matches {
		labels[i] = steps[j].Label()
	}
	return -1, fmt.Errorf("%w token %q: %s",
		ErrAmbiguousTimestep, token, strings.Join(labels, ", "))
}

func matchToken(token, label string) bool {
	if token == label {
		return true
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil || n < 0 {
		return false
	}
	digits := trailingDigits(label)
	if digits == "" {
		return false
	}
	m, err := strconv.ParseInt(digits, 10, 64)
	return err == nil && m == n
}

// trailingDigits returns the run of decimal digits at the end of s.
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
