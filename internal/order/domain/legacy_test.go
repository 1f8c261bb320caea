package domain

import "testing"

func TestParseLegacyCustomerName(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		wantName string
		wantMeta Metadata
	}{
		{
			name:     "plain offline customer",
			encoded:  "Pak Budi",
			wantName: "Pak Budi",
		},
		{
			name:     "full marketplace suffix set",
			encoded:  "Budi (Resi: JX123) (Toko: Shopee) (Via: JNE)",
			wantName: "Budi",
			wantMeta: Metadata{Resi: "JX123", Shop: "Shopee", Channel: "JNE"},
		},
		{
			name:     "resi only",
			encoded:  "Siti (Resi: TKP-889)",
			wantName: "Siti",
			wantMeta: Metadata{Resi: "TKP-889"},
		},
		{
			name:     "irregular spacing",
			encoded:  "Andi(Resi:  A1 )  (Via: SiCepat)",
			wantName: "Andi",
			wantMeta: Metadata{Resi: "A1", Channel: "SiCepat"},
		},
		{
			name:     "unrelated parentheses survive",
			encoded:  "Toko Jaya (cabang 2)",
			wantName: "Toko Jaya (cabang 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotMeta := ParseLegacyCustomerName(tt.encoded)
			if gotName != tt.wantName {
				t.Errorf("name = %q, want %q", gotName, tt.wantName)
			}
			if gotMeta != tt.wantMeta {
				t.Errorf("meta = %+v, want %+v", gotMeta, tt.wantMeta)
			}
		})
	}
}

func TestEncodeLegacyCustomerNameRoundTrip(t *testing.T) {
	meta := Metadata{Resi: "JX123", Shop: "Tokopedia", Channel: "JNT"}
	encoded := EncodeLegacyCustomerName("Budi", meta)

	wantEncoded := "Budi (Resi: JX123) (Toko: Tokopedia) (Via: JNT)"
	if encoded != wantEncoded {
		t.Fatalf("encoded = %q, want %q", encoded, wantEncoded)
	}

	name, parsed := ParseLegacyCustomerName(encoded)
	if name != "Budi" {
		t.Errorf("round-trip name = %q, want %q", name, "Budi")
	}
	if parsed != meta {
		t.Errorf("round-trip meta = %+v, want %+v", parsed, meta)
	}
}

func TestEncodeLegacyCustomerNameNoMeta(t *testing.T) {
	if got := EncodeLegacyCustomerName("Pak Budi", Metadata{}); got != "Pak Budi" {
		t.Fatalf("encoded = %q, want plain name", got)
	}
}
