package cli

import (
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/spf13/pflag"
)

// directionValue is a pflag.Value accepting "up" or "down".
type directionValue domain.Direction

var _ pflag.Value = (*directionValue)(nil)

func newDirectionValue(def domain.Direction, p *domain.Direction) *directionValue {
	*p = def
	return (*directionValue)(p)
}

func (d *directionValue) String() string { return string(*d) }
func (d *directionValue) Type() string   { return "up|down" }

func (d *directionValue) Set(s string) error {
	dir, err := domain.ParseDirection(s)
	if err != nil {
		return err
	}
	*d = directionValue(dir)
	return nil
}

// positionValue is a pflag.Value accepting "top" or "bottom".
type positionValue domain.StagePosition

var _ pflag.Value = (*positionValue)(nil)

func newPositionValue(def domain.StagePosition, p *domain.StagePosition) *positionValue {
	*p = def
	return (*positionValue)(p)
}

func (v *positionValue) String() string { return string(*v) }
func (v *positionValue) Type() string   { return "top|bottom" }

func (v *positionValue) Set(s string) error {
	pos, err := domain.ParseStagePosition(s)
	if err != nil {
		return err
	}
	*v = positionValue(pos)
	return nil
}
