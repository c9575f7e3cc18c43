package wasm

// Section IDs, in the order non-custom sections must appear (ascending,
// each at most once). Custom sections may appear anywhere, any number of
// times.
const (
	SectionIDCustom    = 0
	SectionIDType      = 1
	SectionIDImport    = 2
	SectionIDFunction  = 3
	SectionIDTable     = 4
	SectionIDMemory    = 5
	SectionIDGlobal    = 6
	SectionIDExport    = 7
	SectionIDStart     = 8
	SectionIDElement   = 9
	SectionIDCode      = 10
	SectionIDData      = 11
	SectionIDDataCount = 12
)

// ImportKind discriminates an Import's descriptor.
type ImportKind byte

const (
	ImportKindFunc   ImportKind = 0x00
	ImportKindTable  ImportKind = 0x01
	ImportKindMemory ImportKind = 0x02
	ImportKindGlobal ImportKind = 0x03
)

// Import is one entry of the Import section: a (module, name) pair and a
// descriptor selected by Kind.
type Import struct {
	Module string
	Name   string
	Kind   ImportKind

	DescFunc   TypeIndex
	DescTable  TableType
	DescMemory MemoryType
	DescGlobal GlobalType
}

// ExportKind discriminates an Export's index space, using the same tag
// byte values as ImportKind.
type ExportKind byte

const (
	ExportKindFunc   ExportKind = 0x00
	ExportKindTable  ExportKind = 0x01
	ExportKindMemory ExportKind = 0x02
	ExportKindGlobal ExportKind = 0x03
)

// Export is one entry of the Export section. Index is interpreted in the
// index space named by Kind.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// Global is one entry of the Global section: a type and a constant
// initializer expression.
type Global struct {
	Type GlobalType
	Init Expression
}

// Locals groups Count consecutive function locals sharing Type - the unit
// the Code section's local declarations are run-length encoded in.
type Locals struct {
	Count uint32
	Type  ValueType
}

// Code is one entry of the Code section: a function's locals (beyond its
// parameters) and its body.
type Code struct {
	Locals []Locals
	Body   Expression
}

// ElementMode discriminates an element segment's lifecycle.
type ElementMode byte

const (
	// ElementModeActive segments are copied into a table at
	// instantiation, at the offset given by evaluating Offset.
	ElementModeActive ElementMode = iota
	// ElementModePassive segments exist only to be used by table.init;
	// they are not copied into any table automatically.
	ElementModePassive
	// ElementModeDeclarative segments exist only to declare that certain
	// functions may be referenced by ref.func; they have no runtime
	// representation at all.
	ElementModeDeclarative
)

// Element is one entry of the Element section. Table and Offset are only
// meaningful when Mode is ElementModeActive.
type Element struct {
	Mode   ElementMode
	Table  TableIndex
	Offset Expression
	Init   []FunctionIndex
}

// DataMode discriminates a data segment's lifecycle.
type DataMode byte

const (
	// DataModeActive segments are copied into a memory at instantiation.
	DataModeActive DataMode = iota
	// DataModePassive segments exist only to be used by memory.init.
	DataModePassive
)

// Data is one entry of the Data section. Memory and Offset are only
// meaningful when Mode is DataModeActive.
type Data struct {
	Mode   DataMode
	Memory MemoryIndex
	Offset Expression
	Init   []byte
}

// NameSection is the subset of the custom "name" section this core
// decodes: the module name. Function and local name maps are a pretty-
// printer concern, out of this core's scope.
type NameSection struct {
	ModuleName string
}

// CustomSection is a custom section this decoder doesn't otherwise
// recognize, preserved verbatim so a downstream tool can still interpret
// it.
type CustomSection struct {
	Name string
	Data []byte
}

// Module is the fully decoded form of a WebAssembly binary: magic and
// version have already been validated by the time one of these exists.
// Every non-custom section is optional (nil/zero-length when absent) and
// may appear at most once; CustomSection entries preserve the order they
// were encountered in, interleaved anywhere among the other sections in
// the original binary (a position downstream consumers don't need, since
// custom sections are defined to be position-agnostic).
type Module struct {
	TypeSection      []FunctionType
	ImportSection    []Import
	FunctionSection  []TypeIndex
	TableSection     []TableType
	MemorySection    []MemoryType
	GlobalSection    []Global
	ExportSection    []Export
	StartSection     *FunctionIndex
	ElementSection   []Element
	CodeSection      []Code
	DataSection      []Data
	DataCountSection *uint32

	NameSection    *NameSection
	CustomSections []CustomSection
}
