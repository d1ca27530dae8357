// Package driving defines the driving (inbound) ports for Marginalia.
//
// Driving ports are the interfaces through which the CLI, TUI and MCP
// adapters invoke the core: library access, sync orchestration and
// highlight export.
package driving
