package gatekeeper

import (
	"context"
	"testing"

	"github.com/nerrad567/usbgate/internal/device"
	"github.com/nerrad567/usbgate/internal/profile"
	"github.com/nerrad567/usbgate/internal/usb"
)

// stubBus is a Bus that returns canned devices and records whether it was
// asked to enumerate.
type stubBus struct {
	devices []device.Attributes
	err     error
	calls   int
}

func (b *stubBus) Devices(_ context.Context) ([]device.Attributes, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.devices, nil
}

func strPtr(s string) *string { return &s }

// modelFor builds a validated model from login/device tuples.
func modelFor(t *testing.T, users ...profile.UserRecord) *profile.Model {
	t.Helper()
	model, err := profile.FromRecord(profile.Record{Users: users})
	if err != nil {
		t.Fatalf("building test model: %v", err)
	}
	return model
}

func userRecord(login string, devices ...profile.DeviceRecord) profile.UserRecord {
	if devices == nil {
		// A present-but-empty device list, not a missing one.
		devices = []profile.DeviceRecord{}
	}
	return profile.UserRecord{Login: &login, Devices: devices}
}

func deviceRecord(vid, pid uint16, serial string) profile.DeviceRecord {
	return profile.DeviceRecord{VendorID: &vid, ProductID: &pid, Serial: &serial}
}

func attached(vid, pid uint16, serial string) device.Attributes {
	a := device.Attributes{Vendor: device.ID(vid), Product: device.ID(pid)}
	if serial != "" {
		a.Serial = strPtr(serial)
	}
	return a
}

func TestAuthenticate_UnknownLoginSkipsEnumeration(t *testing.T) {
	bus := &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN42")}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "mallory")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if ok {
		t.Error("unknown login must not authenticate")
	}
	if bus.calls != 0 {
		t.Errorf("bus enumerated %d times for unknown login, want 0", bus.calls)
	}
}

func TestAuthenticate_MatchingDeviceAllows(t *testing.T) {
	bus := &stubBus{devices: []device.Attributes{
		attached(0xdead, 0xbeef, "OTHER"),
		attached(0x1234, 0x0001, "SN42"),
	}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !ok {
		t.Error("exactly matching attached device should authenticate")
	}
	if bus.calls != 1 {
		t.Errorf("bus enumerated %d times, want 1", bus.calls)
	}
}

func TestAuthenticate_SerialMismatchDenies(t *testing.T) {
	// SN42 profile against an SN99 device.
	bus := &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN99")}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if ok {
		t.Error("device with a different serial must not authenticate")
	}
}

func TestAuthenticate_AbsentDeviceSerialStillMatches(t *testing.T) {
	// Pinned permissive rule: the profile pins a serial, the attached device
	// exposes none, vendor/product agree: the device matches.
	bus := &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "")}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !ok {
		t.Error("absent device serial with matching vendor/product should authenticate")
	}
}

func TestAuthenticate_BusFailureFailsClosed(t *testing.T) {
	bus := &stubBus{err: usb.ErrBusUnavailable}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err == nil {
		t.Error("bus failure should surface an error to the engine")
	}
	if ok {
		t.Error("bus failure must never authenticate")
	}
}

func TestAuthenticate_EmptyFingerprintListDenies(t *testing.T) {
	bus := &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN42")}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice"))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if ok {
		t.Error("a profile with no fingerprints authenticates nothing")
	}
	if bus.calls != 0 {
		t.Error("no fingerprints means no reason to touch the bus")
	}
}

func TestAuthenticate_UnrestrictedFingerprintMatchesAnything(t *testing.T) {
	// All-wildcard profile entry: legal, dangerous, and deliberately not
	// special-cased. Even an all-zero device satisfies it.
	bus := &stubBus{devices: []device.Attributes{{}}}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0, 0, "")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !ok {
		t.Error("unrestricted fingerprint should match any attached device")
	}
}

func TestAuthenticate_EmptyBusDenies(t *testing.T) {
	bus := &stubBus{}
	auth := New(bus)
	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	ok, err := auth.Authenticate(context.Background(), model, "alice")
	if err != nil {
		t.Fatalf("empty bus is not an error, got %v", err)
	}
	if ok {
		t.Error("no attached devices must not authenticate")
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		bus   *stubBus
		login string
		want  Decision
	}{
		{
			name:  "matching device allows",
			bus:   &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN42")}},
			login: "alice",
			want:  Allow,
		},
		{
			name:  "wrong serial denies",
			bus:   &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN99")}},
			login: "alice",
			want:  Deny,
		},
		{
			name:  "unknown login denies",
			bus:   &stubBus{devices: []device.Attributes{attached(0x1234, 0x0001, "SN42")}},
			login: "mallory",
			want:  Deny,
		},
		{
			name:  "bus failure denies",
			bus:   &stubBus{err: usb.ErrBusUnavailable},
			login: "alice",
			want:  Deny,
		},
	}

	model := modelFor(t, userRecord("alice", deviceRecord(0x1234, 0x0001, "SN42")))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := New(tt.bus)
			if got := auth.Decide(context.Background(), model, tt.login); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}
