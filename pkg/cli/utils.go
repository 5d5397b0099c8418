package cli

import "github.com/urfave/cli/v3"

type flagger interface {
	Flags() []cli.Flag
}

// joinFlags collects the flags of every config section in order
func joinFlags(sections ...flagger) []cli.Flag {
	var result []cli.Flag
	for _, s := range sections {
		result = append(result, s.Flags()...)
	}
	return result
}

type flagFunc func() []cli.Flag

func (f flagFunc) Flags() []cli.Flag { return f() }
