package core

import (
	"strings"
	"testing"
)

// TestObjectType tests the ObjectType String() method
func TestObjectType(t *testing.T) {
	tests := []struct {
		name string
		typ  ObjectType
		want string
	}{
		{"Null", ObjNull, "Null"},
		{"Bool", ObjBool, "Bool"},
		{"Int", ObjInt, "Int"},
		{"Real", ObjReal, "Real"},
		{"Name", ObjName, "Name"},
		{"Array", ObjArray, "Array"},
		{"Dict", ObjDict, "Dict"},
		{"Stream", ObjStream, "Stream"},
		{"IndirectRef", ObjIndirect, "IndirectRef"},
		{"Unknown", ObjectType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("ObjectType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestScalars tests String() and Type() of the scalar objects
func TestScalars(t *testing.T) {
	tests := []struct {
		name  string
		obj   Object
		wantS string
		wantT ObjectType
	}{
		{"null", Null{}, "null", ObjNull},
		{"true", Bool(true), "true", ObjBool},
		{"false", Bool(false), "false", ObjBool},
		{"int", Int(-42), "-42", ObjInt},
		{"real", Real(0.5), "0.5", ObjReal},
		{"name", Name("DeviceRGB"), "/DeviceRGB", ObjName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.String(); got != tt.wantS {
				t.Errorf("String() = %v, want %v", got, tt.wantS)
			}
			if got := tt.obj.Type(); got != tt.wantT {
				t.Errorf("Type() = %v, want %v", got, tt.wantT)
			}
		})
	}
}

// TestArray tests array accessors
func TestArray(t *testing.T) {
	arr := Array{Name("Indexed"), Name("DeviceRGB"), Int(255), IndirectRef{3, 0}}

	if arr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", arr.Len())
	}
	if n, ok := arr.GetName(0); !ok || n != "Indexed" {
		t.Errorf("GetName(0) = %v, %v", n, ok)
	}
	if i, ok := arr.GetInt(2); !ok || i != 255 {
		t.Errorf("GetInt(2) = %v, %v", i, ok)
	}
	if _, ok := arr.GetInt(0); ok {
		t.Error("GetInt(0) should fail on a name")
	}
	if arr.Get(-1) != nil || arr.Get(4) != nil {
		t.Error("Get out of range should return nil")
	}
	if got := arr.String(); got != "[/Indexed /DeviceRGB 255 3 0 R]" {
		t.Errorf("String() = %v", got)
	}
}

// TestIntArray tests the integer array constructor
func TestIntArray(t *testing.T) {
	arr := IntArray(10, 10, 20, 20)
	if got := arr.String(); got != "[10 10 20 20]" {
		t.Errorf("IntArray().String() = %v", got)
	}
	if len(IntArray()) != 0 {
		t.Error("IntArray() should be empty")
	}
}

// TestDict tests dictionary accessors
func TestDict(t *testing.T) {
	dict := Dict{
		"Type":   Name("XObject"),
		"Width":  Int(4),
		"Decode": IntArray(0, 1),
		"SMask":  IndirectRef{7, 0},
	}

	if n, ok := dict.GetName("Type"); !ok || n != "XObject" {
		t.Errorf("GetName(Type) = %v, %v", n, ok)
	}
	if i, ok := dict.GetInt("Width"); !ok || i != 4 {
		t.Errorf("GetInt(Width) = %v, %v", i, ok)
	}
	if _, ok := dict.GetInt("Type"); ok {
		t.Error("GetInt(Type) should fail on a name")
	}
	if arr, ok := dict.GetArray("Decode"); !ok || arr.Len() != 2 {
		t.Errorf("GetArray(Decode) = %v, %v", arr, ok)
	}
	if r, ok := dict.GetIndirectRef("SMask"); !ok || r.Number != 7 {
		t.Errorf("GetIndirectRef(SMask) = %v, %v", r, ok)
	}
	if _, ok := dict.GetName("Missing"); ok {
		t.Error("GetName(Missing) should fail")
	}

	dict.Set("Height", Int(2))
	if !dict.Has("Height") {
		t.Error("Set did not add Height")
	}
	dict.Delete("Height")
	if dict.Has("Height") {
		t.Error("Delete did not remove Height")
	}

	keys := dict.Keys()
	want := []string{"Decode", "SMask", "Type", "Width"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

// TestDictString tests that dictionaries render in key order
func TestDictString(t *testing.T) {
	dict := Dict{"Width": Int(1), "Height": Int(2), "BitsPerComponent": Int(8)}
	want := "<</BitsPerComponent 8 /Height 2 /Width 1>>"
	if got := dict.String(); got != want {
		t.Errorf("Dict.String() = %v, want %v", got, want)
	}

	if (Dict{}).String() != "<<>>" {
		t.Error("empty Dict.String() should be <<>>")
	}
}

// TestDictClone tests that Clone copies the top level
func TestDictClone(t *testing.T) {
	orig := Dict{"A": Int(1)}
	clone := orig.Clone()
	clone.Set("B", Int(2))

	if orig.Has("B") {
		t.Error("modifying the clone changed the original")
	}
	if Dict(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

// TestStream tests the Stream object
func TestStream(t *testing.T) {
	stream := &Stream{
		Dict: Dict{"Length": Int(5)},
		Data: []byte("hello"),
	}

	if stream.Type() != ObjStream {
		t.Errorf("Stream.Type() = %v, want %v", stream.Type(), ObjStream)
	}

	str := stream.String()
	if !strings.Contains(str, "stream") || !strings.Contains(str, "5 bytes") {
		t.Errorf("Stream.String() = %v, want to contain 'stream' and '5 bytes'", str)
	}
}

// TestIndirectRef tests the IndirectRef object
func TestIndirectRef(t *testing.T) {
	tests := []struct {
		name       string
		ref        IndirectRef
		wantString string
	}{
		{"simple", IndirectRef{5, 0}, "5 0 R"},
		{"with generation", IndirectRef{10, 2}, "10 2 R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ref.Type() != ObjIndirect {
				t.Errorf("IndirectRef.Type() = %v, want %v", tt.ref.Type(), ObjIndirect)
			}
			if tt.ref.String() != tt.wantString {
				t.Errorf("IndirectRef.String() = %v, want %v", tt.ref.String(), tt.wantString)
			}
		})
	}
}
