package types

import (
	"fmt"
	"runtime"
	"strings"
)

// Endian is a byte order. EndianNone doubles as "unspecified" in a Platform
// and as the order of single-byte types.
type Endian int

const (
	EndianNone Endian = iota
	EndianLittle
	EndianBig
)

// EndianNetwork is the network byte order.
const EndianNetwork = EndianBig

func (e Endian) String() string {
	switch e {
	case EndianLittle:
		return "little"
	case EndianBig:
		return "big"
	default:
		return "none"
	}
}

// ParseEndian accepts little|le, big|be, net|network. The empty string and
// "native" return EndianNone, meaning "use the default".
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native", "nil":
		return EndianNone, nil
	case "little", "le":
		return EndianLittle, nil
	case "big", "be":
		return EndianBig, nil
	case "net", "network":
		return EndianNetwork, nil
	default:
		return EndianNone, MissingConfig(fmt.Sprintf("unknown endian %q", s), s)
	}
}

// Arch is a CPU architecture family.
type Arch int

const (
	ArchNone Arch = iota
	ArchX86
	ArchX86_64
	ArchPPC
	ArchPPC64
	ArchMIPS
	ArchMIPS64
	ArchARM
	ArchARM64
)

var archNames = map[Arch]string{
	ArchX86:    "x86",
	ArchX86_64: "x86_64",
	ArchPPC:    "ppc",
	ArchPPC64:  "ppc64",
	ArchMIPS:   "mips",
	ArchMIPS64: "mips64",
	ArchARM:    "arm",
	ArchARM64:  "arm64",
}

func (a Arch) String() string {
	if s, ok := archNames[a]; ok {
		return s
	}
	return "none"
}

// ParseArch maps an architecture name, alias or endian-suffixed variant
// (mips_le, arm_be, ...) to its family and the byte order the suffix implies.
// An unsuffixed name returns EndianNone. An unrecognized name is a bad
// platform option, not a type lookup, so it fails with ErrMissingConfig like
// the other construction arguments.
func ParseArch(s string) (Arch, Endian, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	endian := EndianNone
	switch {
	case strings.HasSuffix(name, "_le"):
		endian, name = EndianLittle, strings.TrimSuffix(name, "_le")
	case strings.HasSuffix(name, "_be"):
		endian, name = EndianBig, strings.TrimSuffix(name, "_be")
	}
	switch name {
	case "", "nil":
		return ArchNone, endian, nil
	case "x86", "i386", "i686", "386":
		return ArchX86, endian, nil
	case "x86_64", "x86-64", "amd64", "ia64":
		return ArchX86_64, endian, nil
	case "ppc", "powerpc":
		return ArchPPC, endian, nil
	case "ppc64", "powerpc64":
		return ArchPPC64, endian, nil
	case "mips":
		return ArchMIPS, endian, nil
	case "mips64":
		return ArchMIPS64, endian, nil
	case "arm":
		return ArchARM, endian, nil
	case "arm64", "aarch64":
		return ArchARM64, endian, nil
	default:
		return ArchNone, EndianNone, MissingConfig(fmt.Sprintf("unknown arch %q", s), s)
	}
}

// OS selects a typedef overlay.
type OS int

const (
	OSNone OS = iota
	OSUnix
	OSBSD
	OSFreeBSD
	OSOpenBSD
	OSNetBSD
	OSLinux
	OSMacOS
	OSWindows
)

var osNames = map[OS]string{
	OSUnix:    "unix",
	OSBSD:     "bsd",
	OSFreeBSD: "freebsd",
	OSOpenBSD: "openbsd",
	OSNetBSD:  "netbsd",
	OSLinux:   "linux",
	OSMacOS:   "macos",
	OSWindows: "windows",
}

func (o OS) String() string {
	if s, ok := osNames[o]; ok {
		return s
	}
	return "none"
}

// ParseOS maps an OS name to its overlay. "darwin" is accepted for macos.
// Unknown names fail with ErrMissingConfig.
func ParseOS(s string) (OS, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "nil":
		return OSNone, nil
	case "darwin", "osx":
		return OSMacOS, nil
	}
	for o, n := range osNames {
		if n == name {
			return o, nil
		}
	}
	return OSNone, MissingConfig(fmt.Sprintf("unknown os %q", s), s)
}

// Platform selects a type table. The zero value is the native table with no
// architecture or OS overlay.
//
//   - Endian: byte order override; EndianNone keeps the arch default (or native).
//   - Arch:   architecture table; ArchNone uses the plain endian table.
//   - OS:     typedef overlay; OSNone adds none.
type Platform struct {
	Endian Endian
	Arch   Arch
	OS     OS
}

func (p Platform) String() string {
	return fmt.Sprintf("endian=%s arch=%s os=%s", p.Endian, p.Arch, p.OS)
}

// ParsePlatform builds a Platform from textual options. An endian implied by
// an arch suffix (arm_be) fills Endian when endian is empty; an explicit
// endian that contradicts the suffix is rejected.
func ParsePlatform(endian, arch, os string) (Platform, error) {
	e, err := ParseEndian(endian)
	if err != nil {
		return Platform{}, err
	}
	a, archEndian, err := ParseArch(arch)
	if err != nil {
		return Platform{}, err
	}
	if archEndian != EndianNone {
		if e != EndianNone && e != archEndian {
			return Platform{}, MissingConfig(
				fmt.Sprintf("endian %s contradicts arch %q", e, arch), endian)
		}
		e = archEndian
	}
	o, err := ParseOS(os)
	if err != nil {
		return Platform{}, err
	}
	return Platform{Endian: e, Arch: a, OS: o}, nil
}

// NativePlatform describes the running process: GOARCH and GOOS mapped onto
// the supported families. Unknown values map to ArchNone/OSNone.
func NativePlatform() Platform {
	var p Platform
	switch runtime.GOARCH {
	case "386":
		p.Arch = ArchX86
	case "amd64":
		p.Arch = ArchX86_64
	case "arm":
		p.Arch = ArchARM
	case "arm64":
		p.Arch = ArchARM64
	case "ppc64", "ppc64le":
		p.Arch = ArchPPC64
	case "mips", "mipsle":
		p.Arch = ArchMIPS
	case "mips64", "mips64le":
		p.Arch = ArchMIPS64
	}
	switch runtime.GOARCH {
	case "ppc64le", "mipsle", "mips64le":
		p.Endian = EndianLittle
	}
	switch runtime.GOOS {
	case "linux", "android":
		p.OS = OSLinux
	case "darwin", "ios":
		p.OS = OSMacOS
	case "freebsd":
		p.OS = OSFreeBSD
	case "openbsd":
		p.OS = OSOpenBSD
	case "netbsd":
		p.OS = OSNetBSD
	case "windows":
		p.OS = OSWindows
	}
	return p
}
