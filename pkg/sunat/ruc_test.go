package sunat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/pkg/sunat"
)

func TestValidateRUC_Validos(t *testing.T) {
	for _, ruc := range []string{"20131312955", "20100070970"} {
		assert.NoError(t, sunat.ValidateRUC(ruc), ruc)
	}
}

func TestValidateRUC_Invalidos(t *testing.T) {
	cases := map[string]string{
		"digito incorrecto": "20131312956",
		"longitud corta":    "2013131295",
		"prefijo invalido":  "30131312955",
		"con letras":        "2013131295A",
	}
	for name, ruc := range cases {
		assert.Error(t, sunat.ValidateRUC(ruc), name)
	}
}

func TestComputeRUCCheckDigit(t *testing.T) {
	d, err := sunat.ComputeRUCCheckDigit("2013131295")
	require.NoError(t, err)
	assert.Equal(t, byte('5'), d)

	d, err = sunat.ComputeRUCCheckDigit("2010007097")
	require.NoError(t, err)
	assert.Equal(t, byte('0'), d, "resto 10 se convierte en 0")
}

func TestValidateDNI(t *testing.T) {
	assert.NoError(t, sunat.ValidateDNI("45678912"))
	assert.Error(t, sunat.ValidateDNI("4567891"))
	assert.Error(t, sunat.ValidateDNI("4567-8912"))
}
