package cmd

import (
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) config.Option

// flagOptions collects options of the flags the user changed.
func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range flags {
		if opt := f(cmd); opt != nil {
			res = append(res, opt)
		}
	}
	return res
}

func stringFlag(name string, fn func(string) config.Option) funcFlag {
	return func(cmd *cobra.Command) config.Option {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		s, _ := cmd.Flags().GetString(name)
		return fn(s)
	}
}

func idsFlag(name string, fn func([]int64) config.Option) funcFlag {
	return func(cmd *cobra.Command) config.Option {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		ids, _ := cmd.Flags().GetInt64Slice(name)
		return fn(ids)
	}
}

func jobsFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return config.OptJobsNumber(i)
}
