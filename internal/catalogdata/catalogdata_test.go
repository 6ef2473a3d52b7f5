package catalogdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

func TestLoad(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, data.Benefits)
	assert.Len(t, data.Tiers, 3)
	assert.NotEmpty(t, data.FAQs)
	assert.NotEmpty(t, data.Sessions)

	assert.Equal(t, "Yampi", data.Benefits[0].CompanyName)
	assert.Equal(t, []domain.TierCode{domain.TierAmbassadors}, data.Benefits[0].EligibleTiers)
}

func TestData_Validate(t *testing.T) {
	tiers := []domain.Tier{{ID: domain.TierAmbassadors}}

	tests := []struct {
		name    string
		data    Data
		wantErr bool
	}{
		{
			name: "referências válidas",
			data: Data{Tiers: tiers, Benefits: []domain.Benefit{{ID: "a", EligibleTiers: []domain.TierCode{"T1"}}}},
		},
		{
			name:    "tier inexistente no conjunto",
			data:    Data{Tiers: tiers, Benefits: []domain.Benefit{{ID: "a", EligibleTiers: []domain.TierCode{"T2"}}}},
			wantErr: true,
		},
		{
			name: "descrição para tier inexistente",
			data: Data{Tiers: tiers, Benefits: []domain.Benefit{{
				ID:               "a",
				TierDescriptions: map[domain.TierCode]string{"T3": "x"},
			}}},
			wantErr: true,
		},
		{
			name:    "id duplicado",
			data:    Data{Tiers: tiers, Benefits: []domain.Benefit{{ID: "a"}, {ID: "a"}}},
			wantErr: true,
		},
		{
			name:    "tier desconhecido",
			data:    Data{Tiers: []domain.Tier{{ID: "T7"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
