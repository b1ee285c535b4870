// Package internaldefs holds the shared metric name and help-text tables used
// by the exporter packages. It is internal wiring; applications should not
// import it directly.
package internaldefs
