// Package cmd provides the command-line interface implementation for skillpack.
//
// It uses the Cobra library for command structure and is executed through Fang
// for styling. The root command validates and packages a skill directory; the
// remaining commands are:
//   - validate: check a skill directory's SKILL.md without packaging
//   - inspect: list a .skill archive and check its consistency
//
// Each command is implemented in its own file with a constructor that returns a
// *cobra.Command. Settings are resolved with Viper from flags, SKILLPACK_*
// environment variables and an optional .skillpack.yaml file.
package cmd
