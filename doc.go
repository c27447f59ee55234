// Package pkgexec is the execution core of a Windows driver and firmware
// package installer.
//
// It answers two questions for an orchestration layer: does the installed
// version of a component satisfy the vendor's constraint, and what happened
// when the vendor's installer command line was run.
//
// # Basic Usage
//
//	ex := pkgexec.New(pkgexec.WithLogger(log))
//
//	switch ex.Check("1.2^1.9", installedVersion) {
//	case installer.Satisfied:
//	    // nothing to do
//	case installer.Unparseable:
//	    // bad vendor metadata; do not treat as "needs install"
//	}
//
//	res := ex.Run(pkgDir, `"%PackageRoot%\setup.exe" /s`, false)
//	if !res.Succeeded() {
//	    log.Error("install failed: %s", res.Failure)
//	}
//
// Apply combines both into a check, install and verify sequence:
//
//	report := ex.Apply(pkgexec.Package{
//	    Name:          "Chipset",
//	    Dir:           pkgDir,
//	    CommandLine:   `setup.exe -s`,
//	    Constraint:    "10.1.19^",
//	    SystemVersion: queryChipsetVersion,
//	})
//
// Nothing here cancels or times out a running installer; Run and Apply block
// until the process exits.
package pkgexec
