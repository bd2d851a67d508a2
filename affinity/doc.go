/*
Package affinity binds the calling OS thread to a logical processor, hiding the
differences between platforms behind a single [Binder] interface.

Depending on the platform, a Binder pins threads in one of three modes:

  - [Hard]: the thread runs only on the selected processor (Linux, Windows).
  - [Hint]: the thread gets a scheduling quality-of-service class instead, as
    the platform doesn't support pinning threads to processors (macOS).
  - [None]: binding is a no-op; there are no pinning guarantees at all.

Callers must lock their go routine to its OS thread using
[runtime.LockOSThread] before calling [Binder.Bind], and should not unlock it
again, so the bound OS thread gets thrown away when the go routine finishes.
*/
package affinity
