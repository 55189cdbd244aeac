package halfedge3d

import "github.com/go-gl/mathgl/mgl32"

// faceNormal returns the unnormalised normal of the triangle p1 p2 p3; its
// length is twice the triangle's area.
func faceNormal(p1, p2, p3 mgl32.Vec3) mgl32.Vec3 {
	u := p2.Sub(p1)
	v := p3.Sub(p2)
	return mgl32.Vec3{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// SmoothNormals returns area-weighted vertex normals for the given faces.
// Vertices not used by any face, or surrounded only by degenerate faces,
// get +Z.
func SmoothNormals(positions []mgl32.Vec3, faces []Triangle) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for _, f := range faces {
		if !f.inRange(len(positions)) {
			continue
		}
		n := faceNormal(positions[f[0]], positions[f[1]], positions[f[2]])
		for _, idx := range f {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() == 0 {
			normals[i] = mgl32.Vec3{0, 0, 1}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// fillMissingNormals replaces the normals flagged in missing with smooth
// normals computed from the faces.
func fillMissingNormals(data *MeshData, missing []bool) {
	needed := false
	for _, m := range missing {
		if m {
			needed = true
			break
		}
	}
	if !needed {
		return
	}

	positions := make([]mgl32.Vec3, len(data.Vertices))
	for i, v := range data.Vertices {
		positions[i] = v.Position
	}
	smooth := SmoothNormals(positions, data.Faces)
	for i, m := range missing {
		if m {
			data.Vertices[i].Normal = smooth[i]
		}
	}
}

func (t Triangle) inRange(n int) bool {
	return t[0] >= 0 && t[0] < n && t[1] >= 0 && t[1] < n && t[2] >= 0 && t[2] < n
}
