// Package preflight provides readiness checks for the filesystem paths
// and asset origins that prewarm depends on.
//
// These checks run in two contexts:
//   - The CLI "prewarm check" command runs RunAll and renders the results.
//   - The run command calls individual checks (CheckManifest,
//     CheckDirectoryAccess) before starting a session so a misconfigured
//     deployment fails fast instead of timing out asset by asset.
//
// Origin checks are gated by configuration; unset origins are skipped.
package preflight
