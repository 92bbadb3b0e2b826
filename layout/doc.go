// Package layout compiles declarative layout files into memory schemas.
//
// A layout file lists struct and union types in YAML or TOML:
//
//	platform: {endian: little, arch: x86_64, os: linux}
//	padding: true
//	types:
//	  - name: point
//	    members:
//	      - {name: x, type: int32}
//	      - {name: y, type: int32}
//	  - name: path
//	    members:
//	      - {name: n, type: uint32}
//	      - {name: points, type: "point[]"}
//
// Member types are signature strings. A name declared earlier in the file
// resolves to its schema, so "point[4]" is an array of four point records.
// A type with extends derives from an earlier type and inherits its
// members, platform, padding and alignment.
package layout
