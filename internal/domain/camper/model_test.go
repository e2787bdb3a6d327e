package camper_test

import (
	"testing"

	"fastbreak/internal/domain/camper"
)

// TestCamper_Validate tests validation of Camper.
func TestCamper_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       camper.Camper
		wantErr bool
	}{
		{
			name:    "valid camper",
			c:       camper.Camper{ID: "1", Name: "Avery Hill", Birthdate: "2016-05-01", Grade: "4th"},
			wantErr: false,
		},
		{
			name:    "kindergartner",
			c:       camper.Camper{ID: "2", Name: "Sam Ortiz", Birthdate: "2020-09-14", Grade: "K"},
			wantErr: false,
		},
		{
			name:    "empty name",
			c:       camper.Camper{ID: "3", Name: "  ", Birthdate: "2016-05-01", Grade: "4th"},
			wantErr: true,
		},
		{
			name:    "bad birthdate",
			c:       camper.Camper{ID: "4", Name: "Avery Hill", Birthdate: "05/01/2016", Grade: "4th"},
			wantErr: true,
		},
		{
			name:    "empty birthdate",
			c:       camper.Camper{ID: "5", Name: "Avery Hill", Birthdate: "", Grade: "4th"},
			wantErr: true,
		},
		{
			name:    "grade out of range",
			c:       camper.Camper{ID: "6", Name: "Avery Hill", Birthdate: "2016-05-01", Grade: "9th"},
			wantErr: true,
		},
		{
			name:    "empty grade",
			c:       camper.Camper{ID: "7", Name: "Avery Hill", Birthdate: "2016-05-01", Grade: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Camper.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := tt.c.IsComplete(); got == tt.wantErr {
				t.Errorf("IsComplete() = %v, inconsistent with Validate()", got)
			}
		})
	}
}
