package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/ntru/ntru"
)

const (
	outFlag  = "out"
	inFlag   = "in"
	privFlag = "priv"
	pubFlag  = "pub"
)

func newOutFlag() cli.Flag {
	return &cli.StringFlag{Name: outFlag, Usage: "output file, - for standard output", Value: "-"}
}

func newInFlag() cli.Flag {
	return &cli.StringFlag{Name: inFlag, Usage: "input file, - for standard input", Value: "-"}
}

func newPrivFlag() cli.Flag {
	return &cli.PathFlag{Name: privFlag, Usage: "private key file", Required: true}
}

func newPubFlag() cli.Flag {
	return &cli.PathFlag{Name: pubFlag, Usage: "public key file", Required: true}
}

func newParamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "list the standard parameter sets, or print the selected one with --show",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "show", Usage: "print the selected parameter set as YAML"},
		},
		Action: func(c *cli.Context) error {

			if !c.Bool("show") {
				for _, name := range ntru.StandardParameterNames() {
					params, err := ntru.ParametersByName(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%-11s N=%-5d max message %3d bytes, ciphertext %4d bytes\n",
						name, params.N(), params.MaxMsgLenBytes(), params.CiphertextLen())
				}
				return nil
			}

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(c.App.Writer)
			defer enc.Close()
			return enc.Encode(params)
		},
	}
}

func newKeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a private key and --count public keys",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: outFlag, Usage: "key file prefix: writes <out>.priv and <out>.pub", Required: true},
			&cli.IntFlag{Name: "count", Usage: "number of public keys", Value: 1},
		},
		Action: func(c *cli.Context) error {

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			rnd, err := newRandomContext(c)
			if err != nil {
				return err
			}
			defer rnd.Close()

			kgen := ntru.NewKeyGenerator(params, ntru.WithLogger(loggerFrom(c)))

			sk, pks, err := kgen.GenKeyPairMulti(rnd, c.Int("count"))
			if err != nil {
				return err
			}

			prefix := c.String(outFlag)

			if err = writeKey(prefix+".priv", sk, 0o600); err != nil {
				return err
			}

			for i, pk := range pks {
				path := prefix + ".pub"
				if len(pks) > 1 {
					path = fmt.Sprintf("%s.pub.%d", prefix, i)
				}
				if err = writeKey(path, pk, 0o644); err != nil {
					return err
				}
			}

			loggerFrom(c).Info("generated keys", "params", params.String(), "public keys", len(pks), "prefix", prefix)

			return nil
		},
	}
}

func newPubgenCommand() *cli.Command {
	return &cli.Command{
		Name:  "pubgen",
		Usage: "generate an additional public key for a private key",
		Flags: []cli.Flag{newPrivFlag(), newOutFlag()},
		Action: func(c *cli.Context) error {

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			sk, err := readPrivateKey(params, c.Path(privFlag))
			if err != nil {
				return err
			}

			rnd, err := newRandomContext(c)
			if err != nil {
				return err
			}
			defer rnd.Close()

			pk, err := ntru.NewKeyGenerator(params, ntru.WithLogger(loggerFrom(c))).GenPublicKey(sk, rnd)
			if err != nil {
				return err
			}

			data, err := pk.MarshalBinary()
			if err != nil {
				return err
			}

			return writeOutput(c, c.String(outFlag), data, 0o644)
		},
	}
}

func newEncryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "encrypt",
		Usage: "encrypt a message with a public key",
		Flags: []cli.Flag{newPubFlag(), newInFlag(), newOutFlag()},
		Action: func(c *cli.Context) error {

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			pk, err := readPublicKey(params, c.Path(pubFlag))
			if err != nil {
				return err
			}

			msg, err := readInput(c, c.String(inFlag))
			if err != nil {
				return err
			}

			rnd, err := newRandomContext(c)
			if err != nil {
				return err
			}
			defer rnd.Close()

			enc, err := ntru.NewEncryptor(pk)
			if err != nil {
				return err
			}

			ct, err := enc.Encrypt(msg, rnd)
			if err != nil {
				return err
			}

			return writeOutput(c, c.String(outFlag), ct, 0o644)
		},
	}
}

func newDecryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "decrypt",
		Usage: "decrypt a ciphertext with a key pair",
		Flags: []cli.Flag{newPrivFlag(), newPubFlag(), newInFlag(), newOutFlag()},
		Action: func(c *cli.Context) error {

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			sk, err := readPrivateKey(params, c.Path(privFlag))
			if err != nil {
				return err
			}

			pk, err := readPublicKey(params, c.Path(pubFlag))
			if err != nil {
				return err
			}

			ct, err := readInput(c, c.String(inFlag))
			if err != nil {
				return err
			}

			dec, err := ntru.NewDecryptor(&ntru.KeyPair{Private: sk, Public: pk})
			if err != nil {
				return err
			}

			msg, err := dec.Decrypt(ct)
			if err != nil {
				return err
			}

			return writeOutput(c, c.String(outFlag), msg, 0o600)
		},
	}
}

type binaryMarshaler interface {
	MarshalBinary() ([]byte, error)
}

func writeKey(path string, key binaryMarshaler, perm os.FileMode) error {
	data, err := key.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func readPrivateKey(params ntru.Parameters, path string) (*ntru.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sk := ntru.NewPrivateKey(params)
	if err = sk.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sk, nil
}

func readPublicKey(params ntru.Parameters, path string) (*ntru.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pk := ntru.NewPublicKey(params)
	if err = pk.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pk, nil
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(path)
}

func writeOutput(c *cli.Context, path string, data []byte, perm os.FileMode) error {
	if path == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	return os.WriteFile(path, data, perm)
}
