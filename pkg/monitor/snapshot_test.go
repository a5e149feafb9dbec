package monitor

import (
	"errors"
	"testing"

	"github.com/battalert/battalert/pkg/powersupply"
)

func TestAggregateTwoDevices(t *testing.T) {
	readings := []powersupply.Reading{
		{Status: powersupply.StatusDischarging, Now: 50, Full: 100},
		{Status: powersupply.StatusCharging, Now: 30, Full: 100},
	}

	snap, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if snap.Level != 40 {
		t.Fatalf("expected level 40, got %d", snap.Level)
	}
	if !snap.Discharging {
		t.Fatalf("expected discharging: one device reports Discharging")
	}
	if snap.Full {
		t.Fatalf("expected not full: not every device reports Full")
	}
}

func TestAggregateFullRequiresAllDevices(t *testing.T) {
	readings := []powersupply.Reading{
		{Status: powersupply.StatusFull, Now: 100, Full: 100},
		{Status: powersupply.StatusFull, Now: 98, Full: 100},
	}

	snap, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if !snap.Full {
		t.Fatalf("expected full when every device reports Full")
	}
	if snap.Discharging {
		t.Fatalf("expected not discharging")
	}
}

func TestAggregatePercentOnlyDevice(t *testing.T) {
	// A percentage-only device contributes (percent, 100) to the sums.
	readings := []powersupply.Reading{
		{Status: powersupply.StatusDischarging, Now: 500, Full: 1000},
		{Status: powersupply.StatusDischarging, Now: 30, PercentOnly: true},
	}

	snap, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	// (500+30) / (1000+100) = 48.18... -> 48
	if snap.Level != 48 {
		t.Fatalf("expected level 48, got %d", snap.Level)
	}
}

func TestAggregateRoundsHalfAwayFromZero(t *testing.T) {
	readings := []powersupply.Reading{
		{Status: powersupply.StatusDischarging, Now: 1, Full: 200},
	}

	snap, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	// 100*1/200 = 0.5 rounds up to 1, not down to 0.
	if snap.Level != 1 {
		t.Fatalf("expected level 1, got %d", snap.Level)
	}
}

func TestAggregateNoReadings(t *testing.T) {
	if _, err := Aggregate(nil); !errors.Is(err, ErrNoReadings) {
		t.Fatalf("expected ErrNoReadings, got %v", err)
	}
}

func TestAggregateZeroCapacity(t *testing.T) {
	readings := []powersupply.Reading{
		{Status: powersupply.StatusDischarging, Now: 0, Full: 0},
	}
	if _, err := Aggregate(readings); !errors.Is(err, ErrZeroCapacity) {
		t.Fatalf("expected ErrZeroCapacity, got %v", err)
	}
}
