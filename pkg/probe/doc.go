// Package probe decides, per historical release tag of a patched dependency,
// whether a patch is already applied upstream, still applies cleanly, or no
// longer applies. All version-control and patch operations go through the
// narrow Repository capability interface so the algorithms run unchanged
// against a real git clone or an in-memory fake.
package probe
