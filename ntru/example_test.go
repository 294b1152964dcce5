package ntru_test

import (
	"fmt"

	"github.com/tuneinsight/ntru/ntru"
	"github.com/tuneinsight/ntru/random"
)

func Example() {
	params, err := ntru.ParametersByName("EES401EP1")
	if err != nil {
		panic(err)
	}

	rnd, err := random.NewDeterministicContext(random.Blake2b, []byte("example seed"))
	if err != nil {
		panic(err)
	}
	defer rnd.Close()

	kp, err := ntru.NewKeyGenerator(params).GenKeyPair(rnd)
	if err != nil {
		panic(err)
	}

	enc, err := ntru.NewEncryptor(kp.Public)
	if err != nil {
		panic(err)
	}

	ct, err := enc.Encrypt([]byte("attack at dawn"), rnd)
	if err != nil {
		panic(err)
	}

	dec, err := ntru.NewDecryptor(kp)
	if err != nil {
		panic(err)
	}

	msg, err := dec.Decrypt(ct)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(ct), string(msg))
	// Output: 552 attack at dawn
}

func ExampleParametersByOID() {
	params, err := ntru.ParametersByOID([3]byte{0, 2, 16})
	if err != nil {
		panic(err)
	}
	fmt.Println(params.Name(), params.ProductForm(), params.MaxMsgLenBytes())
	// Output: EES401EP2 true 60
}

func ExampleUnmarshalPublicKey() {
	params, err := ntru.ParametersByName("EES449EP1")
	if err != nil {
		panic(err)
	}

	rnd, err := random.NewDeterministicContext(random.ChaCha20, make([]byte, 32))
	if err != nil {
		panic(err)
	}
	defer rnd.Close()

	kp, err := ntru.NewKeyGenerator(params).GenKeyPair(rnd)
	if err != nil {
		panic(err)
	}

	data, err := kp.Public.MarshalBinary()
	if err != nil {
		panic(err)
	}

	pk, err := ntru.UnmarshalPublicKey(data)
	if err != nil {
		panic(err)
	}

	fmt.Println(pk.Parameters().Name(), len(data), pk.Equal(kp.Public))
	// Output: EES449EP1 621 true
}
