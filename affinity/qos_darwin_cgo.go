// Copyright 2024 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.


//go:build darwin && cgo

package affinity

/*
#include <pthread.h>
#include <pthread/qos.h>

static int set_user_initiated_qos(void) {
	return pthread_set_qos_class_self_np(QOS_CLASS_USER_INITIATED, 0);
}
*/
import "C"

import "syscall"

const qosSupported = true

// setUserInitiatedQoS puts the calling thread into the highest
// non-realtime QoS class.
func setUserInitiatedQoS() error {
	if ret := C.set_user_initiated_qos(); ret != 0 {
		return syscall.Errno(ret)
	}
	return nil
}
