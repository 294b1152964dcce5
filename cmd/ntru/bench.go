package main

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/urfave/cli/v2"

	"github.com/tuneinsight/ntru/ntru"
)

func newBenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "time key generation, encryption and decryption",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "runs", Usage: "number of runs", Value: 20},
		},
		Action: func(c *cli.Context) error {

			params, err := loadParameters(c)
			if err != nil {
				return err
			}

			runs := c.Int("runs")
			if runs < 1 {
				return fmt.Errorf("--runs=%d must be positive", runs)
			}

			rnd, err := newRandomContext(c)
			if err != nil {
				return err
			}
			defer rnd.Close()

			kgen := ntru.NewKeyGenerator(params)
			msg := make([]byte, params.MaxMsgLenBytes())

			var keygen, encrypt, decrypt []float64

			for i := 0; i < runs; i++ {

				start := time.Now()
				kp, err := kgen.GenKeyPair(rnd)
				if err != nil {
					return err
				}
				keygen = append(keygen, float64(time.Since(start).Microseconds()))

				enc, err := ntru.NewEncryptor(kp.Public)
				if err != nil {
					return err
				}

				dec, err := ntru.NewDecryptor(kp)
				if err != nil {
					return err
				}

				start = time.Now()
				ct, err := enc.Encrypt(msg, rnd)
				if err != nil {
					return err
				}
				encrypt = append(encrypt, float64(time.Since(start).Microseconds()))

				start = time.Now()
				if _, err = dec.Decrypt(ct); err != nil {
					return err
				}
				decrypt = append(decrypt, float64(time.Since(start).Microseconds()))
			}

			fmt.Fprintf(c.App.Writer, "%s, %d runs, durations in µs\n", params, runs)

			for _, op := range []struct {
				name   string
				values []float64
			}{
				{"keygen", keygen},
				{"encrypt", encrypt},
				{"decrypt", decrypt},
			} {
				mean, _ := stats.Mean(op.values)
				median, _ := stats.Median(op.values)
				stddev, _ := stats.StandardDeviation(op.values)
				p95, _ := stats.Percentile(op.values, 95)
				fmt.Fprintf(c.App.Writer, "%-8s mean %10.1f  median %10.1f  stddev %9.1f  p95 %10.1f\n", op.name, mean, median, stddev, p95)
			}

			loggerFrom(c).Debug("benchmark done", "params", params.String(), "runs", runs)

			return nil
		},
	}
}
