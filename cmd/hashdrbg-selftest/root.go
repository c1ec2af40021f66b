// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package main is a demonstration / operations CLI that runs the
// Hash_DRBG known-answer self-test suite against every registered
// descriptor and strength and prints a structured pass/fail report. It
// is strictly an outer surface: it never appears in the core package's
// API and the core has zero import-path dependency on it.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sixafter/hash-drbg"
)

var (
	cfgFile          string
	selfTestInterval int
	jsonOutput       bool

	log = logrus.New()
)

// RootCmd is the base command for the self-test CLI.
var RootCmd = &cobra.Command{
	Use:   "hashdrbg-selftest",
	Short: "Run the NIST SP 800-90A Hash_DRBG known-answer self-test suite",
	Long: `hashdrbg-selftest instantiates a Hash_DRBG Registry, runs the
known-answer self-test for every registered (hash, strength) descriptor,
and reports which descriptors remain FIPS-approved afterward.`,
	RunE: runSelfTest,
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./hashdrbg-selftest.yaml)")
	RootCmd.Flags().IntVar(&selfTestInterval, "self-test-interval", 0, "override SELF_TEST_AT (Instantiate calls between forced self-tests); 0 keeps the registry default")
	RootCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as structured logrus JSON instead of text")

	_ = viper.BindPFlag("self_test_interval", RootCmd.Flags().Lookup("self-test-interval"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hashdrbg-selftest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("HASHDRBG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.WithError(err).Warn("failed to read config file, continuing with flag/env defaults")
		}
	}
}

// Execute runs the root command, exiting non-zero on error or on any
// demoted descriptor.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	if jsonOutput {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var opts []hashdrbg.RegistryOption
	if interval := viper.GetInt("self_test_interval"); interval > 0 {
		opts = append(opts, hashdrbg.WithSelfTestInterval(interval))
	}

	registry := hashdrbg.NewRegistry(opts...)

	err := registry.RunSelfTests()

	allApproved := true
	for _, d := range registry.Descriptors() {
		entry := log.WithFields(logrus.Fields{
			"descriptor":             d.Name,
			"seedlen_bytes":          d.SeedLen,
			"outlen_bytes":           d.OutLen,
			"fips_capable":           d.FIPSCapable,
			"approved":               d.Approved(),
			"max_bytes_per_request":  humanize.IBytes(uint64(d.MaxBytesPerRequest)),
			"max_generate_calls":     d.MaxGenerateCalls,
		})
		if d.FIPSCapable && !d.Approved() {
			allApproved = false
			entry.Warn("descriptor demoted: self-test did not pass")
			continue
		}
		entry.Info("descriptor self-test result")
	}

	if err != nil {
		if merr, ok := err.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				log.WithError(e).Error("self-test failure detail")
			}
		}
	}

	if !allApproved {
		return fmt.Errorf("hashdrbg-selftest: one or more FIPS-capable descriptors failed self-test")
	}
	return nil
}
