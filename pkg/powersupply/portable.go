package powersupply

import (
	"strconv"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
)

// PortableReader reads batteries through github.com/distatus/battery, for
// systems without a Linux sysfs power_supply tree. Device names are the
// library's battery indexes ("0", "1", ...).
type PortableReader struct{}

func NewPortableReader() *PortableReader {
	return &PortableReader{}
}

func (p *PortableReader) Read(name string) (Reading, error) {
	idx, err := strconv.Atoi(name)
	if err != nil {
		return Reading{}, pkgerrors.Errorf("portable backend expects a battery index, got %q", name)
	}

	bat, err := battery.Get(idx)
	if err != nil {
		// Partial errors still carry usable charge numbers.
		if _, partial := err.(battery.ErrPartial); !partial {
			return Reading{}, pkgerrors.Wrapf(ErrUnreadable, "battery %d: %v", idx, err)
		}
	}

	return Reading{
		Status: statusFromState(bat.State),
		Now:    bat.Current,
		Full:   bat.Full,
	}, nil
}

func (p *PortableReader) Discover() ([]string, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		if _, partial := err.(battery.Errors); !partial {
			return nil, pkgerrors.Wrap(err, "failed to enumerate batteries")
		}
	}

	names := make([]string, 0, len(batteries))
	for i := range batteries {
		names = append(names, strconv.Itoa(i))
	}
	return names, nil
}

func statusFromState(s battery.State) Status {
	switch s {
	case battery.Discharging:
		return StatusDischarging
	case battery.Full:
		return StatusFull
	case battery.Charging:
		return StatusCharging
	default:
		return StatusUnknown
	}
}
