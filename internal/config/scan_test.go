package config

import (
	"reflect"
	"testing"
)

func TestFindEmptyKeys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		want   []string
	}{
		{
			name:   "fully populated",
			mutate: func(cfg *Config) {},
			want:   nil,
		},
		{
			name:   "single empty payload auth",
			mutate: func(cfg *Config) { cfg.Emp.Payload.Auth = "" },
			want:   []string{"Emp.payload.auth"},
		},
		{
			name: "several gaps are sorted",
			mutate: func(cfg *Config) {
				cfg.Pbay.Cookies = LegacyCookies{}
				cfg.Ent.Auth = ""
				cfg.Emp.Cookies = CurrentCookies{ClientID: "x"}
			},
			want: []string{"Emp.cookies.sid", "Ent.auth", "Pbay.cookies.session"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := populated()
			tt.mutate(cfg)

			got, err := FindEmptyKeys(cfg)
			if err != nil {
				t.Fatalf("FindEmptyKeys() error = %v", err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("FindEmptyKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindEmptyKeysDefaults(t *testing.T) {
	got, err := FindEmptyKeys(Default())
	if err != nil {
		t.Fatalf("FindEmptyKeys() error = %v", err)
	}

	want := []string{
		"Emp.auth", "Emp.cookies.cid", "Emp.cookies.sid", "Emp.payload.auth",
		"Ent.auth", "Ent.cookies.cid", "Ent.cookies.sid", "Ent.payload.auth",
		"Pbay.auth", "Pbay.cookies.session", "Pbay.payload.auth",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindEmptyKeys(Default()) = %v, want %v", got, want)
	}
}

func TestWarnEmptyKeys(t *testing.T) {
	cfg := populated()
	cfg.Ent.Payload.Auth = ""

	if got := WarnEmptyKeys(cfg); !reflect.DeepEqual(got, []string{"Ent.payload.auth"}) {
		t.Errorf("WarnEmptyKeys() = %v", got)
	}
}
