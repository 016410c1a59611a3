package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Builtins(t *testing.T) {
	r, err := NewRegistry(ReferenceDefaults(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"baseline", "renewable", "mixed", "sleep", "sleep+renewable"}, r.Names())

	tests := []struct {
		kind      Kind
		sleep     float64
		renewable float64
	}{
		{KindBaseline, 0, 0},
		{KindRenewable, 0, 1},
		{KindMixed, 0, 0.3},
		{KindSleep, 0.3, 0},
		{KindSleepRenewable, 0.3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p, ok := r.Get(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.kind.String(), p.Name)
			assert.Equal(t, tt.sleep, p.SleepFraction)
			assert.Equal(t, tt.renewable, p.RenewableShare)
			assert.True(t, p.ManufacturingSpread)
		})
	}

	_, ok := r.Get(KindCustom)
	assert.False(t, ok)
	assert.Equal(t, "baseline", r.Baseline().Name)
}

func TestNewRegistry_Custom(t *testing.T) {
	r, err := NewRegistry(Defaults{SleepReduction: 0.5, PartialRenewable: 0.6}, false,
		Params{Kind: KindBaseline, Name: "night-sleep", SleepFraction: 0.6},
		Custom("green-grid", 0, 0.8, true),
	)
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 7)
	assert.Equal(t, "night-sleep", all[5].Name)
	assert.Equal(t, KindCustom, all[5].Kind, "custom entries are always KindCustom")
	assert.True(t, all[6].ManufacturingSpread)

	mixed, _ := r.Get(KindMixed)
	assert.Equal(t, 0.6, mixed.RenewableShare)
	sleep, _ := r.Get(KindSleep)
	assert.Equal(t, 0.5, sleep.SleepFraction)

	// All returns a copy.
	all[0].Name = "changed"
	assert.Equal(t, "baseline", r.All()[0].Name)
}

func TestNewRegistry_Duplicates(t *testing.T) {
	_, err := NewRegistry(ReferenceDefaults(), false, Custom("Baseline", 0.1, 0.1, false))
	assert.True(t, errors.Is(err, ErrDuplicateScenario))

	_, err = NewRegistry(ReferenceDefaults(), false, Custom("a", 0, 0, false), Custom("a", 1, 1, false))
	assert.True(t, errors.Is(err, ErrDuplicateScenario))

	_, err = NewRegistry(ReferenceDefaults(), false, Custom("", 0, 0, false))
	assert.True(t, errors.Is(err, ErrUnnamedScenario))
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := NewRegistry(ReferenceDefaults(), false, Custom("solar-farm", 0.1, 0.9, false))
	require.NoError(t, err)

	tests := []struct {
		name        string
		query       string
		want        string
		wantErr     bool
		errContains string
	}{
		{name: "exact", query: "mixed", want: "mixed"},
		{name: "case insensitive", query: " Sleep+Renewable ", want: "sleep+renewable"},
		{name: "custom", query: "solar-farm", want: "solar-farm"},
		{name: "subsequence suggestion", query: "slep", wantErr: true, errContains: `did you mean "sleep"`},
		{name: "typo suggestion", query: "renewables", wantErr: true, errContains: `did you mean "renewable"`},
		{name: "no suggestion", query: "zzzzzzzz", wantErr: true, errContains: "known: baseline, renewable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Lookup(tt.query)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, p.Name)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownScenario))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRegistry_LookupAll(t *testing.T) {
	r, err := NewRegistry(ReferenceDefaults(), false)
	require.NoError(t, err)

	ps, err := r.LookupAll([]string{"sleep", "baseline"})
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "sleep", ps[0].Name)

	_, err = r.LookupAll([]string{"baseline", "nope"})
	assert.True(t, errors.Is(err, ErrUnknownScenario))
}

func TestRegistry_LookupAll_DropsRepeats(t *testing.T) {
	r, err := NewRegistry(ReferenceDefaults(), false)
	require.NoError(t, err)

	ps, err := r.LookupAll([]string{"sleep", "baseline", "Baseline", " SLEEP "})
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "sleep", ps[0].Name)
	assert.Equal(t, "baseline", ps[1].Name)
}

func TestKind(t *testing.T) {
	for _, k := range BuiltinKinds {
		parsed, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)

		text, err := k.MarshalText()
		require.NoError(t, err)
		var decoded Kind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, k, decoded)
	}

	k, ok := ParseKind("custom")
	assert.False(t, ok)
	assert.Equal(t, KindCustom, k)
	assert.Equal(t, "custom", KindCustom.String())
}
