/*
Package cli implements the dualstore command line interface.

Every command opens the local database named by the configuration, attaches
the configured remote store, runs one orchestrator operation and closes both
tiers again, waiting for background remote deletes before exiting.

	dualstore put dictionary '{"word":"shpi","definitionEnglish":"house"}'
	dualstore get dictionary SHPI
	dualstore pull blog --page-size 50
	dualstore --offline list scores
*/
package cli
