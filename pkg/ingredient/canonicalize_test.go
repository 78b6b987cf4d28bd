package ingredient_test

import (
	"math/rand"
	"testing"

	"github.com/medbase/meddb/pkg/ingredient"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		msg, desc, generic, want string
	}{
		{
			msg:     "generic name preferred over description",
			desc:    "TAB. 500 MG PARACETAMOL ENVASE CON 10",
			generic: "Paracetamol 500 mg Tableta",
			want:    "PARACETAMOL",
		},
		{
			msg:     "concentration without space",
			generic: "paracetamol 500mg tableta",
			want:    "PARACETAMOL",
		},
		{
			msg:     "accented form noun",
			generic: "Ibuprofeno 400 mg Cápsula",
			want:    "IBUPROFENO",
		},
		{
			msg:  "salt prefix with connective, description only",
			desc: "Clorhidrato de Metformina 850 mg Tableta",
			want: "METFORMINA",
		},
		{
			msg:  "decimal concentration and percent unit",
			desc: "Solución 0.9% Cloruro de Sodio envase con 1000 ml",
			want: "CLORURO DE SODIO",
		},
		{
			msg:     "filler words stripped",
			generic: "cada tableta contiene naproxeno 250 mg",
			want:    "NAPROXENO",
		},
		{
			msg:     "micrograms unit",
			generic: "Levotiroxina 100 mcg tableta",
			want:    "LEVOTIROXINA",
		},
		{
			msg:     "only first salt prefix removed",
			generic: "sulfato de atropina sulfato de magnesio",
			want:    "ATROPINA SULFATO DE MAGNESIO",
		},
		{
			msg:     "diacritics folded",
			generic: "Ácido Acetilsalicílico 300 mg Tableta",
			want:    "ACIDO ACETILSALICILICO",
		},
		{
			msg:     "punctuation stripped",
			generic: "Amoxicilina/Ácido Clavulánico, tableta",
			want:    "AMOXICILINAACIDO CLAVULANICO",
		},
		{
			msg:  "unknown salt passes through",
			desc: "Valproato de Magnesio 200 mg tableta",
			want: "VALPROATO DE MAGNESIO",
		},
		{
			msg:  "both inputs empty",
			want: "",
		},
		{
			msg:     "text reduced to nothing",
			generic: "500 mg tableta",
			want:    "",
		},
	}

	for _, v := range tests {
		got := ingredient.Canonicalize(v.desc, v.generic)
		assert.Equal(t, v.want, got, v.msg)
	}
}

func TestCanonicalizeTerm(t *testing.T) {
	assert.Equal(t, "PARACETAMOL", ingredient.CanonicalizeTerm("paracetamol"))
	assert.Equal(t, "METFORMINA",
		ingredient.CanonicalizeTerm("clorhidrato de metformina"))
	assert.Equal(t, "", ingredient.CanonicalizeTerm(""))
	assert.Equal(t, "", ingredient.CanonicalizeTerm("   "))
}

// The canonicalizer must be pure: the same input always yields the same
// token regardless of call order, which keeps the normalization pass
// idempotent and order-independent.
func TestCanonicalizePurity(t *testing.T) {
	inputs := []string{
		"Paracetamol 500 mg Tableta",
		"Clorhidrato de Metformina 850 mg Tableta",
		"Ibuprofeno 400 mg Cápsula",
		"Solución 0.9% Cloruro de Sodio",
	}

	want := make(map[string]string, len(inputs))
	for _, in := range inputs {
		want[in] = ingredient.Canonicalize(in, "")
	}

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		perm := r.Perm(len(inputs))
		for _, j := range perm {
			in := inputs[j]
			assert.Equal(t, want[in], ingredient.Canonicalize(in, ""))
		}
	}
}
