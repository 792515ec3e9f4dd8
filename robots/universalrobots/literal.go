package universalrobots

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
)

// FormatJointList prints q as a URScript list literal, [j0,j1,j2,j3,j4,j5].
func FormatJointList(q referenceframe.JointVector) (string, error) {
	if err := checkFinite("joints", q[:]...); err != nil {
		return "", err
	}
	return formatList(q[:]), nil
}

// FormatPose prints p as a URScript pose literal, p[x,y,z,rx,ry,rz].
func FormatPose(p spatialmath.Pose) (string, error) {
	vals := p.Floats()
	if err := checkFinite("pose", vals...); err != nil {
		return "", err
	}
	return "p" + formatList(vals), nil
}

// ParseJointList reads a list literal such as the controller returns for get_actual_joint_positions().
func ParseJointList(s string) (referenceframe.JointVector, error) {
	vals, err := parseList(strings.TrimSpace(s))
	if err != nil {
		return referenceframe.JointVector{}, errors.Wrap(err, "bad joint list")
	}
	return referenceframe.JointVectorFromFloats(vals)
}

// ParsePose reads a pose literal such as the controller returns for get_actual_tcp_pose().
func ParsePose(s string) (spatialmath.Pose, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "p") {
		return spatialmath.Pose{}, errors.Errorf("bad pose %q: missing p prefix", s)
	}
	vals, err := parseList(s[1:])
	if err != nil {
		return spatialmath.Pose{}, errors.Wrap(err, "bad pose")
	}
	return spatialmath.PoseFromFloats(vals)
}

func parseList(s string) ([]float64, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errors.Errorf("%q is not enclosed in brackets", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}
	fields := strings.Split(body, ",")
	vals := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
