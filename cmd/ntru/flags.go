package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tuneinsight/ntru/ntru"
	"github.com/tuneinsight/ntru/random"
)

const (
	paramsFlag     = "params"
	paramsFileFlag = "params-file"
	providerFlag   = "provider"
	seedFlag       = "seed"
	verbosityFlag  = "verbosity"
	logJSONFlag    = "log-json"
)

// newGlobalFlags returns the flags shared by all commands. Flags are allocated per
// application since urfave/cli stores the parsed values in them.
func newGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    paramsFlag,
			Usage:   "standard parameter set",
			Value:   "EES401EP1",
			EnvVars: []string{"NTRU_PARAMS"},
		},
		&cli.PathFlag{
			Name:    paramsFileFlag,
			Usage:   "YAML parameter literal, overrides --params",
			EnvVars: []string{"NTRU_PARAMS_FILE"},
		},
		&cli.StringFlag{
			Name:    providerFlag,
			Usage:   fmt.Sprintf("randomness provider %v", random.Names()),
			Value:   "system",
			EnvVars: []string{"NTRU_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    seedFlag,
			Usage:   "seed of a deterministic provider (testing only)",
			EnvVars: []string{"NTRU_SEED"},
		},
		&cli.IntFlag{
			Name:    verbosityFlag,
			Usage:   "log level 0-5",
			Value:   2,
			EnvVars: []string{"NTRU_VERBOSITY"},
		},
		&cli.BoolFlag{
			Name:    logJSONFlag,
			Usage:   "log in JSON",
			EnvVars: []string{"NTRU_LOG_JSON"},
		},
	}
}

func loadParameters(c *cli.Context) (ntru.Parameters, error) {

	path := c.Path(paramsFileFlag)
	if path == "" {
		return ntru.ParametersByName(c.String(paramsFlag))
	}

	f, err := os.Open(path)
	if err != nil {
		return ntru.Parameters{}, err
	}
	defer f.Close()

	lit, err := ntru.LoadParametersLiteral(f)
	if err != nil {
		return ntru.Parameters{}, err
	}

	return ntru.NewParametersFromLiteral(lit)
}

// newRandomContext returns a context of the selected provider, seeded if --seed is set.
func newRandomContext(c *cli.Context) (*random.Context, error) {

	gen, err := random.ByName(c.String(providerFlag))
	if err != nil {
		return nil, err
	}

	if seed := c.String(seedFlag); seed != "" {
		loggerFrom(c).Warn("using a deterministic seed", "provider", gen.Name())
		return random.NewDeterministicContext(gen, []byte(seed))
	}

	return random.NewContext(gen)
}
