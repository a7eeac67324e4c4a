// Package form is a small reference host for the field adapters. Host keeps
// values, touched flags and errors in a State and hands out model.Input and
// model.Meta contracts; Build turns a definition into adapters bound to a
// host and re-renders them whenever the host reports an event.
//
// Hosts and forms are not safe for concurrent use.
package form
