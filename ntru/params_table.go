package ntru

import (
	"fmt"

	"github.com/tuneinsight/ntru/digest"
	"github.com/tuneinsight/ntru/utils"
)

// Standard parameter sets of IEEE 1363.1 (EESS #1), with lifted private keys f = 1 + 3T.
// The EESxxxEP sets with a single private polynomial are ternary, the others use product-form
// polynomials of weights (Df1, Df2, Df3).
var (
	EES401EP1 = ParametersLiteral{
		Name:         "EES401EP1",
		N:            401,
		Q:            2048,
		Df:           113,
		Dg:           133,
		Dm0:          112,
		Db:           112,
		C:            11,
		MinCallsR:    32,
		MinCallsMask: 9,
		OID:          [3]byte{0, 2, 4},
		Hash:         digest.NameSHA1,
		PkLen:        114,
		Lifted:       true,
	}

	EES449EP1 = ParametersLiteral{
		Name:         "EES449EP1",
		N:            449,
		Q:            2048,
		Df:           134,
		Dg:           149,
		Dm0:          128,
		Db:           128,
		C:            9,
		MinCallsR:    31,
		MinCallsMask: 9,
		OID:          [3]byte{0, 3, 3},
		Hash:         digest.NameSHA1,
		PkLen:        128,
		Lifted:       true,
	}

	EES677EP1 = ParametersLiteral{
		Name:         "EES677EP1",
		N:            677,
		Q:            2048,
		Df:           157,
		Dg:           225,
		Dm0:          157,
		Db:           192,
		C:            11,
		MinCallsR:    27,
		MinCallsMask: 9,
		OID:          [3]byte{0, 5, 3},
		Hash:         digest.NameSHA256,
		PkLen:        192,
		Lifted:       true,
	}

	EES1087EP2 = ParametersLiteral{
		Name:         "EES1087EP2",
		N:            1087,
		Q:            2048,
		Df:           120,
		Dg:           362,
		Dm0:          120,
		Db:           256,
		C:            13,
		MinCallsR:    25,
		MinCallsMask: 14,
		OID:          [3]byte{0, 6, 3},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}

	EES541EP1 = ParametersLiteral{
		Name:         "EES541EP1",
		N:            541,
		Q:            2048,
		Df:           49,
		Dg:           180,
		Dm0:          49,
		Db:           112,
		C:            12,
		MinCallsR:    15,
		MinCallsMask: 11,
		OID:          [3]byte{0, 2, 5},
		Hash:         digest.NameSHA1,
		PkLen:        112,
		Lifted:       true,
	}

	EES613EP1 = ParametersLiteral{
		Name:         "EES613EP1",
		N:            613,
		Q:            2048,
		Df:           55,
		Dg:           204,
		Dm0:          55,
		Db:           128,
		C:            11,
		MinCallsR:    16,
		MinCallsMask: 13,
		OID:          [3]byte{0, 3, 4},
		Hash:         digest.NameSHA1,
		PkLen:        128,
		Lifted:       true,
	}

	EES887EP1 = ParametersLiteral{
		Name:         "EES887EP1",
		N:            887,
		Q:            2048,
		Df:           81,
		Dg:           295,
		Dm0:          81,
		Db:           192,
		C:            10,
		MinCallsR:    13,
		MinCallsMask: 12,
		OID:          [3]byte{0, 5, 4},
		Hash:         digest.NameSHA256,
		PkLen:        192,
		Lifted:       true,
	}

	EES1171EP1 = ParametersLiteral{
		Name:         "EES1171EP1",
		N:            1171,
		Q:            2048,
		Df:           106,
		Dg:           390,
		Dm0:          106,
		Db:           256,
		C:            12,
		MinCallsR:    20,
		MinCallsMask: 15,
		OID:          [3]byte{0, 6, 4},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}

	EES659EP1 = ParametersLiteral{
		Name:         "EES659EP1",
		N:            659,
		Q:            2048,
		Df:           38,
		Dg:           219,
		Dm0:          38,
		Db:           112,
		C:            11,
		MinCallsR:    11,
		MinCallsMask: 14,
		OID:          [3]byte{0, 2, 6},
		Hash:         digest.NameSHA1,
		PkLen:        112,
		Lifted:       true,
	}

	EES761EP1 = ParametersLiteral{
		Name:         "EES761EP1",
		N:            761,
		Q:            2048,
		Df:           42,
		Dg:           253,
		Dm0:          42,
		Db:           128,
		C:            12,
		MinCallsR:    13,
		MinCallsMask: 16,
		OID:          [3]byte{0, 3, 5},
		Hash:         digest.NameSHA1,
		PkLen:        128,
		Lifted:       true,
	}

	EES1087EP1 = ParametersLiteral{
		Name:         "EES1087EP1",
		N:            1087,
		Q:            2048,
		Df:           63,
		Dg:           362,
		Dm0:          63,
		Db:           192,
		C:            13,
		MinCallsR:    13,
		MinCallsMask: 14,
		OID:          [3]byte{0, 5, 5},
		Hash:         digest.NameSHA256,
		PkLen:        192,
		Lifted:       true,
	}

	EES1499EP1 = ParametersLiteral{
		Name:         "EES1499EP1",
		N:            1499,
		Q:            2048,
		Df:           79,
		Dg:           499,
		Dm0:          79,
		Db:           256,
		C:            13,
		MinCallsR:    17,
		MinCallsMask: 19,
		OID:          [3]byte{0, 6, 5},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}

	EES401EP2 = ParametersLiteral{
		Name:         "EES401EP2",
		N:            401,
		Q:            2048,
		ProductForm:  true,
		Df1:          8,
		Df2:          8,
		Df3:          6,
		Dg:           133,
		Dm0:          101,
		Db:           112,
		C:            11,
		MinCallsR:    10,
		MinCallsMask: 6,
		OID:          [3]byte{0, 2, 16},
		Hash:         digest.NameSHA1,
		PkLen:        112,
		Lifted:       true,
	}

	EES439EP1 = ParametersLiteral{
		Name:         "EES439EP1",
		N:            439,
		Q:            2048,
		ProductForm:  true,
		Df1:          9,
		Df2:          8,
		Df3:          5,
		Dg:           146,
		Dm0:          112,
		Db:           128,
		C:            9,
		MinCallsR:    15,
		MinCallsMask: 6,
		OID:          [3]byte{0, 3, 16},
		Hash:         digest.NameSHA1,
		PkLen:        128,
		Lifted:       true,
	}

	EES593EP1 = ParametersLiteral{
		Name:         "EES593EP1",
		N:            593,
		Q:            2048,
		ProductForm:  true,
		Df1:          10,
		Df2:          10,
		Df3:          8,
		Dg:           197,
		Dm0:          158,
		Db:           192,
		C:            11,
		MinCallsR:    12,
		MinCallsMask: 5,
		OID:          [3]byte{0, 5, 16},
		Hash:         digest.NameSHA256,
		PkLen:        192,
		Lifted:       true,
	}

	EES743EP1 = ParametersLiteral{
		Name:         "EES743EP1",
		N:            743,
		Q:            2048,
		ProductForm:  true,
		Df1:          11,
		Df2:          11,
		Df3:          15,
		Dg:           247,
		Dm0:          204,
		Db:           256,
		C:            13,
		MinCallsR:    12,
		MinCallsMask: 7,
		OID:          [3]byte{0, 6, 16},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}

	EES443EP1 = ParametersLiteral{
		Name:         "EES443EP1",
		N:            443,
		Q:            2048,
		ProductForm:  true,
		Df1:          9,
		Df2:          8,
		Df3:          5,
		Dg:           148,
		Dm0:          115,
		Db:           256,
		C:            9,
		MinCallsR:    8,
		MinCallsMask: 5,
		OID:          [3]byte{0, 3, 17},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}

	EES587EP1 = ParametersLiteral{
		Name:         "EES587EP1",
		N:            587,
		Q:            2048,
		ProductForm:  true,
		Df1:          10,
		Df2:          10,
		Df3:          8,
		Dg:           196,
		Dm0:          157,
		Db:           256,
		C:            11,
		MinCallsR:    13,
		MinCallsMask: 7,
		OID:          [3]byte{0, 5, 17},
		Hash:         digest.NameSHA256,
		PkLen:        256,
		Lifted:       true,
	}
)

var standardParameters = map[string]ParametersLiteral{
	"EES401EP1": EES401EP1,
	"EES449EP1": EES449EP1,
	"EES677EP1": EES677EP1,
	"EES1087EP2": EES1087EP2,
	"EES541EP1": EES541EP1,
	"EES613EP1": EES613EP1,
	"EES887EP1": EES887EP1,
	"EES1171EP1": EES1171EP1,
	"EES659EP1": EES659EP1,
	"EES761EP1": EES761EP1,
	"EES1087EP1": EES1087EP1,
	"EES1499EP1": EES1499EP1,
	"EES401EP2": EES401EP2,
	"EES439EP1": EES439EP1,
	"EES593EP1": EES593EP1,
	"EES743EP1": EES743EP1,
	"EES443EP1": EES443EP1,
	"EES587EP1": EES587EP1,
}

// StandardParameterNames returns the sorted names of the standard parameter sets.
func StandardParameterNames() []string {
	return utils.GetSortedKeys(standardParameters)
}

// ParametersByName returns the standard parameter set of the given name.
func ParametersByName(name string) (Parameters, error) {
	lit, ok := standardParameters[name]
	if !ok {
		return Parameters{}, fmt.Errorf("cannot ParametersByName: %w: unknown parameter set %q", ErrInvalidParameter, name)
	}
	return NewParametersFromLiteral(lit)
}

// ParametersByOID returns the standard parameter set of the given OID.
func ParametersByOID(oid [3]byte) (Parameters, error) {
	for _, name := range StandardParameterNames() {
		if lit := standardParameters[name]; lit.OID == oid {
			return NewParametersFromLiteral(lit)
		}
	}
	return Parameters{}, fmt.Errorf("cannot ParametersByOID: %w: unknown OID %v", ErrInvalidParameter, oid)
}
