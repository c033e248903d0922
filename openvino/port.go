package openvino

import (
	"fmt"
	"unsafe"

	"github.com/benedoc-inc/ovbridge/internal/cstrings"
	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// Dimension is one axis of a port shape. Max is -1 when unbounded;
// a static dimension has Min == Max.
type Dimension struct {
	Min int64
	Max int64
}

// IsStatic reports whether the dimension has a single known size.
func (d Dimension) IsStatic() bool {
	return d.Min >= 0 && d.Min == d.Max
}

// PortInfo describes one model input or output.
type PortInfo struct {
	Name        string
	ElementType ElementType

	// Shape is nil when the rank itself is dynamic.
	Shape []Dimension
}

// StaticShape returns the shape as plain sizes, or false if any dimension
// (or the rank) is dynamic.
func (p PortInfo) StaticShape() ([]int64, bool) {
	if p.Shape == nil {
		return nil, false
	}
	dims := make([]int64, len(p.Shape))
	for i, d := range p.Shape {
		if !d.IsStatic() {
			return nil, false
		}
		dims[i] = d.Min
	}
	return dims, true
}

// readPorts reads count ports through byIndex and frees each native port.
func (r *Runtime) readPorts(count func(*uintptr) api.OvStatus, byIndex func(uintptr, *api.OvOutputConstPort) api.OvStatus) ([]PortInfo, error) {
	var n uintptr
	if err := r.invoke(OpQuery, func() api.OvStatus { return count(&n) }); err != nil {
		return nil, fmt.Errorf("failed to get port count: %w", err)
	}

	ports := make([]PortInfo, n)
	for i := range n {
		var port api.OvOutputConstPort
		if err := r.invoke(OpQuery, func() api.OvStatus { return byIndex(i, &port) }); err != nil {
			return nil, fmt.Errorf("failed to get port %d: %w", i, err)
		}
		info, err := r.portInfo(port)
		r.apiFuncs.OutputConstPortFree(port)
		if err != nil {
			return nil, fmt.Errorf("failed to describe port %d: %w", i, err)
		}
		ports[i] = info
	}
	return ports, nil
}

func (r *Runtime) portInfo(port api.OvOutputConstPort) (PortInfo, error) {
	var info PortInfo

	var namePtr *byte
	if err := r.invoke(OpQuery, func() api.OvStatus { return r.apiFuncs.PortGetAnyName(port, &namePtr) }); err != nil {
		return info, fmt.Errorf("failed to get port name: %w", err)
	}
	info.Name = cstrings.CStringToString(namePtr)
	r.apiFuncs.Free(unsafe.Pointer(namePtr))

	if err := r.invoke(OpQuery, func() api.OvStatus { return r.apiFuncs.PortGetElementType(port, &info.ElementType) }); err != nil {
		return info, fmt.Errorf("failed to get port element type: %w", err)
	}

	var shape api.OvPartialShape
	if err := r.invoke(OpQuery, func() api.OvStatus { return r.apiFuncs.PortGetPartialShape(port, &shape) }); err != nil {
		return info, fmt.Errorf("failed to get port shape: %w", err)
	}
	defer r.apiFuncs.PartialShapeFree(&shape)

	rank := Dimension(shape.Rank)
	if rank.IsStatic() {
		info.Shape = make([]Dimension, rank.Min)
		if rank.Min > 0 {
			for i, d := range unsafe.Slice(shape.Dims, rank.Min) {
				info.Shape[i] = Dimension(d)
			}
		}
	}
	return info, nil
}

func portNames(ports []PortInfo) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}
