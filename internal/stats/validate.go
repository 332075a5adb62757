package stats

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"stormlightlabs.org/hockey/internal/core"
)

var strengthStateRe = regexp.MustCompile(`^([3456E1]v[3456E0]|ILLEGAL)$`)

// pbpRow is the validated shape of a play-by-play row at the aggregator
// boundary. A row failing validation is rejected with its first offending
// field.
type pbpRow struct {
	GameID        int    `validate:"required,min=1000000000,max=9999999999"`
	Season        int    `validate:"required,min=10000000"`
	Session       string `validate:"required,oneof=PR R P"`
	Event         string `validate:"required"`
	Period        int    `validate:"min=1,max=10"`
	PeriodSeconds int    `validate:"min=0,max=1200"`
	GameSeconds   int    `validate:"min=0"`
	Version       int    `validate:"min=1"`
	StrengthState string `validate:"omitempty,strength_state"`
	EventLength   int    `validate:"min=0"`
	Danger        int    `validate:"min=0,max=1"`
	HighDanger    int    `validate:"min=0,max=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strength_state", func(fl validator.FieldLevel) bool {
		return strengthStateRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks every row against the aggregator's typed-record rules.
// The first failing row surfaces its index and offending field.
func Validate(events []core.Event) error {
	for i := range events {
		e := &events[i]

		row := pbpRow{
			GameID:        int(e.GameID),
			Season:        int(e.Season),
			Session:       string(e.Session),
			Event:         e.Event,
			Period:        e.Period,
			PeriodSeconds: e.PeriodSeconds,
			GameSeconds:   e.GameSeconds,
			Version:       e.Version,
			StrengthState: e.StrengthState,
			EventLength:   e.EventLength,
			Danger:        e.Danger,
			HighDanger:    e.HighDanger,
		}

		if err := validate.Struct(row); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
				return fmt.Errorf("play-by-play row %d (event %s): field %s failed %q",
					i, e.Event, verrs[0].Field(), verrs[0].Tag())
			}
			return fmt.Errorf("play-by-play row %d: %w", i, err)
		}

		if e.Danger+e.HighDanger > 1 {
			return fmt.Errorf("play-by-play row %d: danger and high_danger both set", i)
		}
	}
	return nil
}
