package policydiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

func testCatalogue(t *testing.T) *policy.Catalogue {
	t.Helper()

	v1 := &policy.Policy{
		Version: "1.0",
		AdditionalConditions: policy.AdditionalConditions{
			AP:  []policy.ConditionTemplate{cond("residence", "Reside at an address"), cond("phone", "No phone")},
			PSS: []policy.ConditionTemplate{cond("drugTest", "Attend drug testing", "address")},
		},
	}
	v2 := &policy.Policy{
		Version: "2.0",
		AdditionalConditions: policy.AdditionalConditions{
			AP:  []policy.ConditionTemplate{cond("residence2", "Reside at an approved address"), cond("phone", "No phone")},
			PSS: []policy.ConditionTemplate{cond("drugTest", "Attend drug testing", "address")},
		},
		ChangeHints: []policy.ChangeHint{{PreviousCode: "residence", Replacements: []string{"residence2"}}},
	}
	v3 := &policy.Policy{
		Version: "3.0",
		AdditionalConditions: policy.AdditionalConditions{
			AP:  []policy.ConditionTemplate{cond("residence3", "Reside where directed"), cond("phone", "No phone", "exceptions")},
			PSS: []policy.ConditionTemplate{cond("drugTest", "Attend drug testing as directed", "address")},
		},
		ChangeHints: []policy.ChangeHint{{PreviousCode: "residence2", Replacements: []string{"residence3"}}},
	}

	cat, err := policy.NewCatalogue(v1, v2, v3)
	require.NoError(t, err)
	return cat
}

func TestCompareLicence_APAndPSS(t *testing.T) {
	cat := testCatalogue(t)
	lic := Licence{
		Kind:    policy.LicenceAPPSS,
		Version: "1.0",
		AP:      FromCodes([]string{"residence", "phone"}),
		PSS:     FromCodes([]string{"drugTest"}),
	}

	got, err := CompareLicence(cat, lic, "3.0")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "residence", got[0].Code)
	assert.Equal(t, Replaced, got[0].ChangeType)
	assert.Equal(t, []Suggestion{{Code: "residence3", CurrentText: "Reside where directed"}}, got[0].Suggestions)

	assert.Equal(t, "phone", got[1].Code)
	assert.Equal(t, NewOptions, got[1].ChangeType)
	assert.Equal(t, []string{"exceptions"}, got[1].AddedInputNames)

	assert.Equal(t, "drugTest", got[2].Code)
	assert.Equal(t, policy.KindPSS, got[2].Kind)
	assert.Equal(t, TextChange, got[2].ChangeType)
}

func TestCompareLicence_KindFilter(t *testing.T) {
	cat := testCatalogue(t)
	lic := Licence{
		Kind:    policy.LicencePSS,
		Version: "1.0",
		AP:      FromCodes([]string{"residence"}),
		PSS:     FromCodes([]string{"drugTest"}),
	}

	got, err := CompareLicence(cat, lic, "3.0")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "drugTest", got[0].Code)
}

func TestCompareLicence_Noops(t *testing.T) {
	cat := testCatalogue(t)

	got, err := CompareLicence(cat, Licence{Kind: policy.LicenceAP, AP: FromCodes([]string{"phone"})}, "3.0")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = CompareLicence(cat, Licence{Kind: policy.LicenceAP, Version: "3.0", AP: FromCodes([]string{"phone"})}, "3.0.0")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCompareLicence_UnknownVersion(t *testing.T) {
	cat := testCatalogue(t)

	_, err := CompareLicence(cat, Licence{Kind: policy.LicenceAP, Version: "1.5"}, "3.0")
	require.ErrorIs(t, err, policy.ErrVersionNotFound)

	_, err = CompareLicence(cat, Licence{Kind: policy.LicenceAP, Version: "bogus"}, "3.0")
	require.ErrorIs(t, err, policy.ErrInvalidVersion)
}

func TestCompareLicence_Downgrade(t *testing.T) {
	cat := testCatalogue(t)

	_, err := CompareLicence(cat, Licence{Kind: policy.LicenceAP, Version: "3.0", AP: FromCodes([]string{"residence3"})}, "1.0")
	require.ErrorIs(t, err, ErrDowngrade)
	assert.Contains(t, err.Error(), "3.0 to 1.0")
}
