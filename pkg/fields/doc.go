// Package fields implements the field adapters: text, checkbox group, radio
// group, select (static or loader backed), date-time and toggle.
//
// Every adapter follows the same lifecycle. The constructor mounts the field
// and derives its validation result once; Update replaces the host props and
// derives again, exactly once per call. Rendering code reads View, which never
// re-derives. Interaction methods (Toggle, Select, Choose, Change, Set, Focus,
// Blur) compute the next value and report it through the host's Input
// callbacks. Adapters never keep authoritative values: the host decides what
// to pass back through Update.
//
// Event ordering:
//
//   - checkbox, radio and toggle interactions call OnBlur(nil) and then
//     OnChange(next);
//   - select and text interactions only call OnChange; blur and focus are
//     separate widget events;
//   - Focus and Blur forward exactly one OnFocus/OnBlur call.
package fields
