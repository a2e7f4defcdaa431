package api

import (
	"context"
	"net/url"
	"strconv"
)

// StudentService maps the student endpoints.
type StudentService struct {
	c *Client
}

func NewStudentService(c *Client) *StudentService { return &StudentService{c: c} }

func (s *StudentService) All(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := s.c.getJSON(ctx, "/student/public/all", nil, &students); err != nil {
		s.c.log.Error().Err(err).Msg("fetch students failed")
		return nil, err
	}
	return students, nil
}

func (s *StudentService) FindByID(ctx context.Context, id int) (*Student, error) {
	query := url.Values{"id": {strconv.Itoa(id)}}
	var student Student
	if err := s.c.getJSON(ctx, "/student/public/findById", query, &student); err != nil {
		s.c.log.Error().Err(err).Int("student_id", id).Msg("fetch student failed")
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) Create(ctx context.Context, student Student) (*Student, error) {
	var created Student
	if err := s.c.postJSON(ctx, "/student/createStudent", nil, student, &created); err != nil {
		s.c.log.Error().Err(err).Str("email", student.EmailID).Msg("create student failed")
		return nil, err
	}
	return &created, nil
}

func (s *StudentService) Update(ctx context.Context, student Student) (*Student, error) {
	var updated Student
	if err := s.c.putJSON(ctx, "/student/public/updateStudent", student, &updated); err != nil {
		s.c.log.Error().Err(err).Int("student_id", student.ID).Msg("update student failed")
		return nil, err
	}
	return &updated, nil
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	query := url.Values{"id": {strconv.Itoa(id)}}
	if err := s.c.deleteJSON(ctx, "/student/public/deleteStudent", query, nil); err != nil {
		s.c.log.Error().Err(err).Int("student_id", id).Msg("delete student failed")
		return err
	}
	return nil
}
