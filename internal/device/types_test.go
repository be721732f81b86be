package device

import "testing"

func TestNewFingerprint_ZeroMeansWildcard(t *testing.T) {
	tests := []struct {
		name    string
		vendor  uint16
		product uint16
		serial  string
		want    string // String() rendering
	}{
		{
			name:   "all set",
			vendor: 0x1234, product: 0x0001, serial: "SN42",
			want: "1234:0001 serial=SN42",
		},
		{
			name:   "zero vendor becomes wildcard",
			vendor: 0, product: 0x0001, serial: "SN42",
			want: "*:0001 serial=SN42",
		},
		{
			name:   "empty serial becomes wildcard",
			vendor: 0x1234, product: 0x0001, serial: "",
			want: "1234:0001 serial=*",
		},
		{
			name:   "all wildcard",
			vendor: 0, product: 0, serial: "",
			want: "*:* serial=*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := NewFingerprint(tt.vendor, tt.product, tt.serial)
			if got := fp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFingerprint_IsUnrestricted(t *testing.T) {
	if !NewFingerprint(0, 0, "").IsUnrestricted() {
		t.Error("all-wildcard fingerprint should be unrestricted")
	}
	if NewFingerprint(0x1234, 0, "").IsUnrestricted() {
		t.Error("fingerprint with a set vendor is not unrestricted")
	}
}

func TestAttributes_String(t *testing.T) {
	serial := "SN42"
	attrs := Attributes{Vendor: 0x1234, Product: 0x0001, Serial: &serial}
	if got, want := attrs.String(), "1234:0001 serial=SN42"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	attrs.SerialTruncated = true
	if got, want := attrs.String(), "1234:0001 serial=SN42 (truncated)"; got != want {
		t.Errorf("String() with truncation = %q, want %q", got, want)
	}

	none := Attributes{Vendor: 0x1234, Product: 0x0001}
	if got, want := none.String(), "1234:0001 serial=-"; got != want {
		t.Errorf("String() without serial = %q, want %q", got, want)
	}
}
