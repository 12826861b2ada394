// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"fmt"

	"github.com/apache/arrow/go/v15/parquet"
	"github.com/apache/arrow/go/v15/parquet/file"
	pqs "github.com/apache/arrow/go/v15/parquet/schema"
)

// readParquet reads the footer of a Parquet file and converts its schema.
func readParquet(r readerAtSeeker) (*Schema, error) {
	rdr, err := file.NewParquetReader(r)
	if err != nil {
		return nil, fmt.Errorf("read parquet footer: %w", err)
	}
	defer rdr.Close() //nolint:errcheck

	return FromParquet(rdr.MetaData().Schema)
}

// FromParquet converts an arrow Parquet schema into a Schema.
func FromParquet(sc *pqs.Schema) (*Schema, error) {
	root := sc.Root()
	s := &Schema{
		Name:   root.Name(),
		Fields: make([]*Node, 0, root.NumFields()),
	}
	for i := 0; i < root.NumFields(); i++ {
		n, err := fromParquetNode(root.Field(i))
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, n)
	}
	return s, nil
}

func fromParquetNode(pn pqs.Node) (*Node, error) {
	rep, err := fromParquetRepetition(pn.RepetitionType())
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", pn.Name(), err)
	}
	logical := fromParquetConverted(pn)

	switch pn := pn.(type) {
	case *pqs.PrimitiveNode:
		return NewPrimitive(pn.Name(), rep, fromParquetPhysical(pn.PhysicalType()), logical), nil
	case *pqs.GroupNode:
		children := make([]*Node, 0, pn.NumFields())
		for i := 0; i < pn.NumFields(); i++ {
			c, err := fromParquetNode(pn.Field(i))
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return NewGroup(pn.Name(), rep, logical, children...), nil
	default:
		return nil, fmt.Errorf("field %q: unexpected node type %T", pn.Name(), pn)
	}
}

func fromParquetRepetition(r parquet.Repetition) (Repetition, error) {
	switch r {
	case parquet.Repetitions.Required:
		return Required, nil
	case parquet.Repetitions.Optional:
		return Optional, nil
	case parquet.Repetitions.Repeated:
		return Repeated, nil
	default:
		return 0, fmt.Errorf("undefined repetition %s", r)
	}
}

func fromParquetPhysical(t parquet.Type) PhysicalType {
	switch t {
	case parquet.Types.Boolean:
		return Boolean
	case parquet.Types.Int32:
		return Int32
	case parquet.Types.Int64:
		return Int64
	case parquet.Types.Int96:
		return Int96
	case parquet.Types.Float:
		return Float
	case parquet.Types.Double:
		return Double
	case parquet.Types.ByteArray:
		return ByteArray
	case parquet.Types.FixedLenByteArray:
		return FixedLenByteArray
	default:
		return PhysicalUndefined
	}
}

// fromParquetConverted returns the node's converted type. Writers that only
// record the newer logical type annotation get it translated back.
func fromParquetConverted(pn pqs.Node) LogicalType {
	ct := pn.ConvertedType()
	if ct == pqs.ConvertedTypes.None && pn.LogicalType() != nil {
		ct, _ = pn.LogicalType().ToConvertedType()
	}

	switch ct {
	case pqs.ConvertedTypes.UTF8:
		return LogicalUTF8
	case pqs.ConvertedTypes.Map:
		return LogicalMap
	case pqs.ConvertedTypes.MapKeyValue:
		return LogicalMapKeyValue
	case pqs.ConvertedTypes.List:
		return LogicalList
	case pqs.ConvertedTypes.Enum:
		return LogicalEnum
	case pqs.ConvertedTypes.Decimal:
		return LogicalDecimal
	case pqs.ConvertedTypes.Date:
		return LogicalDate
	case pqs.ConvertedTypes.TimeMillis:
		return LogicalTimeMillis
	case pqs.ConvertedTypes.TimeMicros:
		return LogicalTimeMicros
	case pqs.ConvertedTypes.TimestampMillis:
		return LogicalTimestampMillis
	case pqs.ConvertedTypes.TimestampMicros:
		return LogicalTimestampMicros
	case pqs.ConvertedTypes.Uint8:
		return LogicalUint8
	case pqs.ConvertedTypes.Uint16:
		return LogicalUint16
	case pqs.ConvertedTypes.Uint32:
		return LogicalUint32
	case pqs.ConvertedTypes.Uint64:
		return LogicalUint64
	case pqs.ConvertedTypes.Int8:
		return LogicalInt8
	case pqs.ConvertedTypes.Int16:
		return LogicalInt16
	case pqs.ConvertedTypes.Int32:
		return LogicalInt32
	case pqs.ConvertedTypes.Int64:
		return LogicalInt64
	case pqs.ConvertedTypes.JSON:
		return LogicalJSON
	case pqs.ConvertedTypes.BSON:
		return LogicalBSON
	case pqs.ConvertedTypes.Interval:
		return LogicalInterval
	default:
		return LogicalNone
	}
}
