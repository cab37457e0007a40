// Command relink reconciles internal book records against an external
// reference catalog. Subcommands cover batch reconciliation (live or
// dry-run), SQL plan emission, catalog inspection, record store
// management, and configuration utilities.
package main
